package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type subsidiaryReader struct {
	db *gorm.DB
}

func (r *subsidiaryReader) getSubsidiaries(ctx context.Context, ids []int) []*dataloader.Result[*models.Subsidiary] {
	var results []models.Subsidiary
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Subsidiary](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetSubsidiary(ctx context.Context, id int) (*models.Subsidiary, error) {
	loaders := For(ctx)
	return loaders.subsidiaryLoader.Load(ctx, id)()
}

func GetSubsidiaries(ctx context.Context, ids []int) ([]*models.Subsidiary, []error) {
	loaders := For(ctx)
	return loaders.subsidiaryLoader.LoadMany(ctx, ids)()
}
