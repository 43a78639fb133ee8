package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type tillReader struct {
	db *gorm.DB
}

func (r *tillReader) getTills(ctx context.Context, ids []int) []*dataloader.Result[*models.Till] {
	var results []models.Till
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Till](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetTill(ctx context.Context, id int) (*models.Till, error) {
	loaders := For(ctx)
	return loaders.tillLoader.Load(ctx, id)()
}
