package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type clientSupplierReader struct {
	db *gorm.DB
}

func (r *clientSupplierReader) getClientSuppliers(ctx context.Context, ids []int) []*dataloader.Result[*models.ClientSupplier] {
	var results []models.ClientSupplier
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.ClientSupplier](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetClientSupplier(ctx context.Context, id int) (*models.ClientSupplier, error) {
	loaders := For(ctx)
	return loaders.clientSupplierLoader.Load(ctx, id)()
}
