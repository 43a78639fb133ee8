package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

type UnitMeasure struct {
	ID           int       `gorm:"primary_key" json:"id"`
	CompanyId    string    `gorm:"index;not null" json:"company_id" binding:"required"`
	Name         string    `gorm:"size:50;not null" json:"name" binding:"required"`
	Abbreviation string    `gorm:"size:10" json:"abbreviation"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUnitMeasure struct {
	Name         string `json:"name" binding:"required"`
	Abbreviation string `json:"abbreviation"`
}

func (obj UnitMeasure) GetCompanyId() string { return obj.CompanyId }

func CreateUnitMeasure(ctx context.Context, input *NewUnitMeasure) (*UnitMeasure, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := utils.ValidateUnique[UnitMeasure](ctx, companyId, "name", input.Name, 0); err != nil {
		return nil, err
	}

	unit := UnitMeasure{
		CompanyId:    companyId,
		Name:         input.Name,
		Abbreviation: input.Abbreviation,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func GetUnitMeasures(ctx context.Context) ([]*UnitMeasure, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return utils.FetchAllModels[UnitMeasure](ctx, companyId)
}
