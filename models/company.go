package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/google/uuid"
)

// Company is the tenant root. Every scoped row carries its id as company_id.
type Company struct {
	ID        uuid.UUID `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	Ruc       string    `gorm:"size:20" json:"ruc"`
	Email     string    `gorm:"size:255" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	Country   string    `gorm:"size:100" json:"country"`
	City      string    `gorm:"size:100" json:"city"`
	Timezone  string    `gorm:"size:50" json:"timezone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCompany struct {
	Name     string `json:"name" binding:"required"`
	Ruc      string `json:"ruc"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Timezone string `json:"timezone"`
}

func (input *NewCompany) validate() error {
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

func CreateCompany(ctx context.Context, input *NewCompany) (*Company, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "America/Lima"
	}

	company := Company{
		ID:       uuid.New(),
		Name:     input.Name,
		Ruc:      input.Ruc,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Country:  input.Country,
		City:     input.City,
		Timezone: timezone,
		IsActive: utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func GetCompany(ctx context.Context) (*Company, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return GetCompanyById(ctx, companyId)
}

func GetCompanyById(ctx context.Context, companyId string) (*Company, error) {
	// find in redis
	var result *Company
	exists, err := config.GetRedisObject("Company:"+companyId, &result)
	if err != nil {
		return nil, err
	}
	if exists {
		return result, nil
	}

	db := config.GetDB()
	var company Company
	if err := db.WithContext(ctx).Where("id = ?", companyId).First(&company).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := config.SetRedisObject("Company:"+companyId, &company, 0); err != nil {
		return nil, err
	}
	return &company, nil
}

func UpdateCompany(ctx context.Context, input *NewCompany) (*Company, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	company, err := GetCompanyById(ctx, companyId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&company).Updates(map[string]interface{}{
		"Name":     input.Name,
		"Ruc":      input.Ruc,
		"Email":    input.Email,
		"Phone":    input.Phone,
		"Address":  input.Address,
		"Country":  input.Country,
		"City":     input.City,
		"Timezone": input.Timezone,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("Company:" + companyId); err != nil {
		return nil, err
	}
	return company, nil
}
