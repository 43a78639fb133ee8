package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

// Subsidiary is a physical branch/store of a company. Tills, sales and
// payments always hang off one subsidiary.
type Subsidiary struct {
	ID        int       `gorm:"primary_key" json:"id"`
	CompanyId string    `gorm:"index;not null" json:"company_id" binding:"required"`
	Serial    string    `gorm:"size:10;not null" json:"serial" binding:"required"`
	Name      string    `gorm:"size:150;not null" json:"name" binding:"required"`
	Address   string    `gorm:"size:255" json:"address"`
	Phone     string    `gorm:"size:20" json:"phone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSubsidiary struct {
	Serial  string `json:"serial" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (obj Subsidiary) GetCompanyId() string { return obj.CompanyId }

// validate input for both create & update. (id = 0 for create)
func (input *NewSubsidiary) validate(ctx context.Context, companyId string, id int) error {
	// unique serial per company
	if err := utils.ValidateUnique[Subsidiary](ctx, companyId, "serial", input.Serial, id); err != nil {
		return err
	}
	// unique name per company
	if err := utils.ValidateUnique[Subsidiary](ctx, companyId, "name", input.Name, id); err != nil {
		return err
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	return nil
}

func CreateSubsidiary(ctx context.Context, input *NewSubsidiary) (*Subsidiary, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := input.validate(ctx, companyId, 0); err != nil {
		return nil, err
	}

	phone := input.Phone
	if phone != "" {
		normalized, err := utils.NormalizePhoneNumber(phone, utils.CountryCode)
		if err == nil {
			phone = normalized
		}
	}

	subsidiary := Subsidiary{
		CompanyId: companyId,
		Serial:    input.Serial,
		Name:      input.Name,
		Address:   input.Address,
		Phone:     phone,
		IsActive:  utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&subsidiary).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Subsidiary](companyId); err != nil {
		return nil, err
	}
	return &subsidiary, nil
}

func UpdateSubsidiary(ctx context.Context, id int, input *NewSubsidiary) (*Subsidiary, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	// id exists
	subsidiary, err := utils.FetchModel[Subsidiary](ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, companyId, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&subsidiary).Updates(map[string]interface{}{
		"Serial":  input.Serial,
		"Name":    input.Name,
		"Address": input.Address,
		"Phone":   input.Phone,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisItem[Subsidiary](id); err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Subsidiary](companyId); err != nil {
		return nil, err
	}
	return subsidiary, nil
}

func DeleteSubsidiary(ctx context.Context, id int) (*Subsidiary, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	subsidiary, err := utils.FetchModel[Subsidiary](ctx, companyId, id)
	if err != nil {
		return nil, err
	}

	// a subsidiary with till history must stay for the audit trail
	count, err := utils.ResourceCountWhere[Till](ctx, companyId, "subsidiary_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("subsidiary has till sessions and cannot be deleted")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&subsidiary).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisItem[Subsidiary](id); err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Subsidiary](companyId); err != nil {
		return nil, err
	}
	return subsidiary, nil
}

func GetSubsidiary(ctx context.Context, id int) (*Subsidiary, error) {
	return GetResource[Subsidiary](ctx, id)
}

func GetSubsidiaries(ctx context.Context) ([]*Subsidiary, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return ListAllResource[Subsidiary, Subsidiary](ctx, "serial")
}

func ToggleActiveSubsidiary(ctx context.Context, id int, isActive bool) (*Subsidiary, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return ToggleActiveModel[Subsidiary](ctx, companyId, id, isActive)
}
