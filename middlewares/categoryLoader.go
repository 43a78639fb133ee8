package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type categoryReader struct {
	db *gorm.DB
}

func (r *categoryReader) getCategories(ctx context.Context, ids []int) []*dataloader.Result[*models.Category] {
	var results []models.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Category](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetCategory(ctx context.Context, id int) (*models.Category, error) {
	loaders := For(ctx)
	return loaders.categoryLoader.Load(ctx, id)()
}

type subCategoryReader struct {
	db *gorm.DB
}

func (r *subCategoryReader) getSubCategories(ctx context.Context, ids []int) []*dataloader.Result[*models.SubCategory] {
	var results []models.SubCategory
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.SubCategory](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetSubCategory(ctx context.Context, id int) (*models.SubCategory, error) {
	loaders := For(ctx)
	return loaders.subCategoryLoader.Load(ctx, id)()
}
