package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type unitMeasureReader struct {
	db *gorm.DB
}

func (r *unitMeasureReader) getUnitMeasures(ctx context.Context, ids []int) []*dataloader.Result[*models.UnitMeasure] {
	var results []models.UnitMeasure
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.UnitMeasure](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetUnitMeasure(ctx context.Context, id int) (*models.UnitMeasure, error) {
	loaders := For(ctx)
	return loaders.unitMeasureLoader.Load(ctx, id)()
}
