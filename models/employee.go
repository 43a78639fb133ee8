package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

type Employee struct {
	ID             int       `gorm:"primary_key" json:"id"`
	CompanyId      string    `gorm:"index;not null" json:"company_id" binding:"required"`
	DocumentNumber string    `gorm:"size:20;not null" json:"document_number" binding:"required"`
	Names          string    `gorm:"size:150;not null" json:"names" binding:"required"`
	LastNames      string    `gorm:"size:150" json:"last_names"`
	ChargeId       int       `gorm:"index" json:"charge_id"`
	SubsidiaryId   int       `gorm:"index;not null" json:"subsidiary_id" binding:"required"`
	Phone          string    `gorm:"size:20" json:"phone"`
	Email          string    `gorm:"size:255" json:"email"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEmployee struct {
	DocumentNumber string `json:"document_number" binding:"required"`
	Names          string `json:"names" binding:"required"`
	LastNames      string `json:"last_names"`
	ChargeId       int    `json:"charge_id"`
	SubsidiaryId   int    `json:"subsidiary_id" binding:"required"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

func (obj Employee) GetCompanyId() string { return obj.CompanyId }

// validate input for both create & update. (id = 0 for create)
func (input *NewEmployee) validate(ctx context.Context, companyId string, id int) error {
	if err := utils.ValidateUnique[Employee](ctx, companyId, "document_number", input.DocumentNumber, id); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Subsidiary](ctx, companyId, input.SubsidiaryId); err != nil {
		return errors.New("subsidiary not found")
	}
	if input.ChargeId > 0 {
		if err := utils.ValidateResourceId[Charge](ctx, companyId, input.ChargeId); err != nil {
			return errors.New("charge not found")
		}
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	return nil
}

func CreateEmployee(ctx context.Context, input *NewEmployee) (*Employee, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := input.validate(ctx, companyId, 0); err != nil {
		return nil, err
	}

	employee := Employee{
		CompanyId:      companyId,
		DocumentNumber: input.DocumentNumber,
		Names:          input.Names,
		LastNames:      input.LastNames,
		ChargeId:       input.ChargeId,
		SubsidiaryId:   input.SubsidiaryId,
		Phone:          input.Phone,
		Email:          input.Email,
		IsActive:       utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&employee).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Employee](companyId); err != nil {
		return nil, err
	}
	return &employee, nil
}

func UpdateEmployee(ctx context.Context, id int, input *NewEmployee) (*Employee, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	employee, err := utils.FetchModel[Employee](ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, companyId, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&employee).Updates(map[string]interface{}{
		"DocumentNumber": input.DocumentNumber,
		"Names":          input.Names,
		"LastNames":      input.LastNames,
		"ChargeId":       input.ChargeId,
		"SubsidiaryId":   input.SubsidiaryId,
		"Phone":          input.Phone,
		"Email":          input.Email,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := RemoveRedisBoth(*employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func GetEmployee(ctx context.Context, id int) (*Employee, error) {
	return GetResource[Employee](ctx, id)
}

func GetEmployees(ctx context.Context, subsidiaryId *int) ([]*Employee, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("company_id = ?", companyId)
	if subsidiaryId != nil && *subsidiaryId > 0 {
		dbCtx = dbCtx.Where("subsidiary_id = ?", *subsidiaryId)
	}
	var results []*Employee
	if err := dbCtx.Order("names").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveEmployee(ctx context.Context, id int, isActive bool) (*Employee, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return ToggleActiveModel[Employee](ctx, companyId, id, isActive)
}
