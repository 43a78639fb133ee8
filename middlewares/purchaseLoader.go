package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type purchaseReader struct {
	db *gorm.DB
}

func (r *purchaseReader) getPurchases(ctx context.Context, ids []int) []*dataloader.Result[*models.Purchase] {
	var results []models.Purchase
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Purchase](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetPurchase(ctx context.Context, id int) (*models.Purchase, error) {
	loaders := For(ctx)
	return loaders.purchaseLoader.Load(ctx, id)()
}

type purchaseDetailReader struct {
	db *gorm.DB
}

func (r *purchaseDetailReader) GetPurchaseDetails(ctx context.Context, Ids []int) []*dataloader.Result[[]*models.PurchaseDetail] {
	var results []models.PurchaseDetail
	err := r.db.WithContext(ctx).Where("purchase_id IN ?", Ids).Find(&results).Error
	if err != nil {
		return handleError[[]*models.PurchaseDetail](len(Ids), err)
	}

	return generateLoaderArrayResults(results, Ids)
}

func GetPurchaseDetails(ctx context.Context, purchaseId int) ([]*models.PurchaseDetail, error) {
	loaders := For(ctx)
	return loaders.purchaseDetailLoader.Load(ctx, purchaseId)()
}
