package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

type Category struct {
	ID        int       `gorm:"primary_key" json:"id"`
	CompanyId string    `gorm:"index;not null" json:"company_id" binding:"required"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCategory struct {
	Name string `json:"name" binding:"required"`
}

type SubCategory struct {
	ID         int       `gorm:"primary_key" json:"id"`
	CompanyId  string    `gorm:"index;not null" json:"company_id" binding:"required"`
	CategoryId int       `gorm:"index;not null" json:"category_id" binding:"required"`
	Name       string    `gorm:"size:100;not null" json:"name" binding:"required"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSubCategory struct {
	CategoryId int    `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

func (obj Category) GetCompanyId() string    { return obj.CompanyId }
func (obj SubCategory) GetCompanyId() string { return obj.CompanyId }

func CreateCategory(ctx context.Context, input *NewCategory) (*Category, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := utils.ValidateUnique[Category](ctx, companyId, "name", input.Name, 0); err != nil {
		return nil, err
	}

	category := Category{
		CompanyId: companyId,
		Name:      input.Name,
		IsActive:  utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Category](companyId); err != nil {
		return nil, err
	}
	return &category, nil
}

func UpdateCategory(ctx context.Context, id int, input *NewCategory) (*Category, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	category, err := utils.FetchModel[Category](ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateUnique[Category](ctx, companyId, "name", input.Name, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&category).Update("Name", input.Name).Error; err != nil {
		return nil, err
	}
	if err := RemoveRedisBoth(*category); err != nil {
		return nil, err
	}
	return category, nil
}

func GetCategories(ctx context.Context) ([]*Category, error) {
	return ListAllResource[Category, Category](ctx, "name")
}

func ToggleActiveCategory(ctx context.Context, id int, isActive bool) (*Category, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return ToggleActiveModel[Category](ctx, companyId, id, isActive)
}

func CreateSubCategory(ctx context.Context, input *NewSubCategory) (*SubCategory, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := utils.ValidateResourceId[Category](ctx, companyId, input.CategoryId); err != nil {
		return nil, errors.New("category not found")
	}
	if err := utils.ValidateUnique[SubCategory](ctx, companyId, "name", input.Name, 0); err != nil {
		return nil, err
	}

	subCategory := SubCategory{
		CompanyId:  companyId,
		CategoryId: input.CategoryId,
		Name:       input.Name,
		IsActive:   utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&subCategory).Error; err != nil {
		return nil, err
	}
	return &subCategory, nil
}

func GetSubCategories(ctx context.Context, categoryId *int) ([]*SubCategory, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("company_id = ?", companyId)
	if categoryId != nil && *categoryId > 0 {
		dbCtx = dbCtx.Where("category_id = ?", *categoryId)
	}
	var results []*SubCategory
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
