package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

// Charge is a job title (cashier, pharmacist, manager).
type Charge struct {
	ID        int       `gorm:"primary_key" json:"id"`
	CompanyId string    `gorm:"index;not null" json:"company_id" binding:"required"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCharge struct {
	Name string `json:"name" binding:"required"`
}

func (obj Charge) GetCompanyId() string { return obj.CompanyId }

func CreateCharge(ctx context.Context, input *NewCharge) (*Charge, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := utils.ValidateUnique[Charge](ctx, companyId, "name", input.Name, 0); err != nil {
		return nil, err
	}

	charge := Charge{
		CompanyId: companyId,
		Name:      input.Name,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&charge).Error; err != nil {
		return nil, err
	}
	return &charge, nil
}

func GetCharges(ctx context.Context) ([]*Charge, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return utils.FetchAllModels[Charge](ctx, companyId)
}

func DeleteCharge(ctx context.Context, id int) (*Charge, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	charge, err := utils.FetchModel[Charge](ctx, companyId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Employee](ctx, companyId, "charge_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("charge is in use by employees")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&charge).Error; err != nil {
		return nil, err
	}
	return charge, nil
}
