package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

// ClientSupplier is a trading partner. The same record can act as a
// client on sales and as a supplier on purchases.
type ClientSupplier struct {
	ID             int          `gorm:"primary_key" json:"id"`
	CompanyId      string       `gorm:"index;not null" json:"company_id" binding:"required"`
	DocumentType   DocumentType `gorm:"type:enum('DNI', 'RUC', 'CE', 'NA');default:NA" json:"document_type"`
	DocumentNumber string       `gorm:"size:20;not null" json:"document_number" binding:"required"`
	Names          string       `gorm:"size:255;not null" json:"names" binding:"required"`
	Address        string       `gorm:"size:255" json:"address"`
	Phone          string       `gorm:"size:20" json:"phone"`
	Email          string       `gorm:"size:255" json:"email"`
	IsClient       *bool        `gorm:"not null;default:true" json:"is_client"`
	IsSupplier     *bool        `gorm:"not null;default:false" json:"is_supplier"`
	IsActive       *bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClientSupplier struct {
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber string       `json:"document_number" binding:"required"`
	Names          string       `json:"names" binding:"required"`
	Address        string       `json:"address"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email"`
	IsClient       *bool        `json:"is_client"`
	IsSupplier     *bool        `json:"is_supplier"`
}

func (obj ClientSupplier) GetCompanyId() string { return obj.CompanyId }

// validate input for both create & update. (id = 0 for create)
func (input *NewClientSupplier) validate(ctx context.Context, companyId string, id int) error {
	if err := utils.ValidateUnique[ClientSupplier](ctx, companyId, "document_number", input.DocumentNumber, id); err != nil {
		return err
	}
	switch input.DocumentType {
	case DocumentTypeDni:
		if len(input.DocumentNumber) != 8 {
			return errors.New("dni must have 8 digits")
		}
	case DocumentTypeRuc:
		if len(input.DocumentNumber) != 11 {
			return errors.New("ruc must have 11 digits")
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
	isClient := input.IsClient == nil || *input.IsClient
	isSupplier := input.IsSupplier != nil && *input.IsSupplier
	if !isClient && !isSupplier {
		return errors.New("record must be a client, a supplier or both")
	}
	return nil
}

func CreateClientSupplier(ctx context.Context, input *NewClientSupplier) (*ClientSupplier, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := input.validate(ctx, companyId, 0); err != nil {
		return nil, err
	}

	phone := input.Phone
	if phone != "" {
		if normalized, err := utils.NormalizePhoneNumber(phone, utils.CountryCode); err == nil {
			phone = normalized
		}
	}

	isClient := utils.NewTrue()
	if input.IsClient != nil {
		isClient = input.IsClient
	}
	isSupplier := utils.NewFalse()
	if input.IsSupplier != nil {
		isSupplier = input.IsSupplier
	}

	partner := ClientSupplier{
		CompanyId:      companyId,
		DocumentType:   input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		Names:          input.Names,
		Address:        input.Address,
		Phone:          phone,
		Email:          input.Email,
		IsClient:       isClient,
		IsSupplier:     isSupplier,
		IsActive:       utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&partner).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[ClientSupplier](companyId); err != nil {
		return nil, err
	}
	return &partner, nil
}

func UpdateClientSupplier(ctx context.Context, id int, input *NewClientSupplier) (*ClientSupplier, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	partner, err := utils.FetchModel[ClientSupplier](ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, companyId, id); err != nil {
		return nil, err
	}

	phone := input.Phone
	if phone != "" {
		if normalized, err := utils.NormalizePhoneNumber(phone, utils.CountryCode); err == nil {
			phone = normalized
		}
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&partner).Updates(map[string]interface{}{
		"DocumentType":   input.DocumentType,
		"DocumentNumber": input.DocumentNumber,
		"Names":          input.Names,
		"Address":        input.Address,
		"Phone":          phone,
		"Email":          input.Email,
		"IsClient":       input.IsClient,
		"IsSupplier":     input.IsSupplier,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := RemoveRedisBoth(*partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func GetClientSupplier(ctx context.Context, id int) (*ClientSupplier, error) {
	return GetResource[ClientSupplier](ctx, id)
}

// GetClientSuppliers filters by role and free text over names & document number.
func GetClientSuppliers(ctx context.Context, isClient *bool, isSupplier *bool, search *string) ([]*ClientSupplier, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("company_id = ?", companyId)
	if isClient != nil {
		dbCtx = dbCtx.Where("is_client = ?", *isClient)
	}
	if isSupplier != nil {
		dbCtx = dbCtx.Where("is_supplier = ?", *isSupplier)
	}
	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		dbCtx = dbCtx.Where("names LIKE ? OR document_number LIKE ?", pattern, pattern)
	}
	var results []*ClientSupplier
	if err := dbCtx.Order("names").Limit(config.SearchLimit * 5).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveClientSupplier(ctx context.Context, id int, isActive bool) (*ClientSupplier, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return ToggleActiveModel[ClientSupplier](ctx, companyId, id, isActive)
}
