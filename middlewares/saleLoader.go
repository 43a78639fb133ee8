package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type saleReader struct {
	db *gorm.DB
}

func (r *saleReader) getSales(ctx context.Context, ids []int) []*dataloader.Result[*models.Sale] {
	var results []models.Sale
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Sale](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetSale(ctx context.Context, id int) (*models.Sale, error) {
	loaders := For(ctx)
	return loaders.saleLoader.Load(ctx, id)()
}

type saleDetailReader struct {
	db *gorm.DB
}

func (r *saleDetailReader) GetSaleDetails(ctx context.Context, Ids []int) []*dataloader.Result[[]*models.SaleDetail] {
	var results []models.SaleDetail
	err := r.db.WithContext(ctx).Where("sale_id IN ?", Ids).Find(&results).Error
	if err != nil {
		return handleError[[]*models.SaleDetail](len(Ids), err)
	}

	return generateLoaderArrayResults(results, Ids)
}

func GetSaleDetails(ctx context.Context, saleId int) ([]*models.SaleDetail, error) {
	loaders := For(ctx)
	return loaders.saleDetailLoader.Load(ctx, saleId)()
}
