package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type chargeReader struct {
	db *gorm.DB
}

func (r *chargeReader) getCharges(ctx context.Context, ids []int) []*dataloader.Result[*models.Charge] {
	var results []models.Charge
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Charge](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetCharge(ctx context.Context, id int) (*models.Charge, error) {
	loaders := For(ctx)
	return loaders.chargeLoader.Load(ctx, id)()
}
