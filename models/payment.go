package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const recordPaymentHandler = "RecordPayment"

// Payment rows are append-only: they are never updated or deleted,
// cancellation is recorded as a status flip and the row stays.
type Payment struct {
	ID              int             `gorm:"primary_key" json:"id"`
	CompanyId       string          `gorm:"index;not null" json:"company_id" binding:"required"`
	SubsidiaryId    int             `gorm:"not null;index:idx_payment_sub_status,priority:1" json:"subsidiary_id" binding:"required"`
	TillId          int             `gorm:"not null;index:idx_payment_till_date,priority:1" json:"till_id" binding:"required"`
	SaleId          *int            `gorm:"index" json:"sale_id"`
	PurchaseId      *int            `gorm:"index" json:"purchase_id"`
	PaymentType     PaymentType     `gorm:"size:10;not null;check:chk_payment_xor,(payment_type = 'SALE' AND sale_id IS NOT NULL AND purchase_id IS NULL) OR (payment_type = 'PURCHASE' AND purchase_id IS NOT NULL AND sale_id IS NULL) OR (payment_type IN ('EXPENSE','ADJUST') AND sale_id IS NULL AND purchase_id IS NULL)" json:"payment_type"`
	PaymentMethod   PaymentMethod   `gorm:"type:enum('E', 'T', 'Y', 'P');index" json:"payment_method"`
	Status          PaymentStatus   `gorm:"size:10;not null;default:PAID;index:idx_payment_sub_status,priority:2" json:"status"`
	PaymentDate     time.Time       `gorm:"index;not null;index:idx_payment_till_date,priority:2" json:"payment_date"`
	DueDate         *time.Time      `json:"due_date"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_amount"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(15,2)" json:"paid_amount"`
	ReferenceNumber string          `gorm:"size:100" json:"reference_number"`
	Notes           string          `gorm:"type:text" json:"notes"`
	User            string          `gorm:"size:100" json:"user"`
	IsActive        *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPayment struct {
	TillId          int             `json:"till_id" binding:"required"`
	SubsidiaryId    int             `json:"subsidiary_id" binding:"required"`
	SaleId          *int            `json:"sale_id"`
	PurchaseId      *int            `json:"purchase_id"`
	PaymentType     PaymentType     `json:"payment_type" binding:"required"`
	PaymentMethod   PaymentMethod   `json:"payment_method" binding:"required"`
	Status          *PaymentStatus  `json:"status"`
	DueDate         *time.Time      `json:"due_date"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	User            string          `json:"user" binding:"required"`
	IdempotencyKey  *string         `json:"idempotency_key"`
}

func (obj Payment) GetCompanyId() string { return obj.CompanyId }

// validateReferences enforces the type/reference matrix: SALE needs a sale
// and no purchase, PURCHASE the inverse, EXPENSE and ADJUST stand alone.
func (input *NewPayment) validateReferences(ctx context.Context, companyId string) error {
	switch input.PaymentType {
	case PaymentTypeSale:
		if input.SaleId == nil || input.PurchaseId != nil {
			return fmt.Errorf("sale payment requires a sale and no purchase: %w", utils.ErrorInvalidArgument)
		}
		count, err := utils.ResourceCountWhere[Sale](ctx, companyId, "id = ? AND subsidiary_id = ?", *input.SaleId, input.SubsidiaryId)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("sale not found in subsidiary: %w", utils.ErrorRecordNotFound)
		}
	case PaymentTypePurchase:
		if input.PurchaseId == nil || input.SaleId != nil {
			return fmt.Errorf("purchase payment requires a purchase and no sale: %w", utils.ErrorInvalidArgument)
		}
		count, err := utils.ResourceCountWhere[Purchase](ctx, companyId, "id = ? AND subsidiary_id = ?", *input.PurchaseId, input.SubsidiaryId)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("purchase not found in subsidiary: %w", utils.ErrorRecordNotFound)
		}
	case PaymentTypeExpense, PaymentTypeAdjust:
		if input.SaleId != nil || input.PurchaseId != nil {
			return fmt.Errorf("%s payment cannot reference a sale or purchase: %w", strings.ToLower(string(input.PaymentType)), utils.ErrorInvalidArgument)
		}
	default:
		return fmt.Errorf("invalid payment type: %w", utils.ErrorInvalidArgument)
	}
	return nil
}

func (input *NewPayment) validate(ctx context.Context, companyId string) error {
	if err := utils.ValidateResourceId[Subsidiary](ctx, companyId, input.SubsidiaryId); err != nil {
		return fmt.Errorf("subsidiary not found: %w", utils.ErrorRecordNotFound)
	}
	if err := input.validateReferences(ctx, companyId); err != nil {
		return err
	}
	if input.TotalAmount.IsNegative() || input.PaidAmount.IsNegative() {
		return fmt.Errorf("amounts cannot be negative: %w", utils.ErrorInvalidArgument)
	}
	if input.PaidAmount.GreaterThan(input.TotalAmount) {
		return fmt.Errorf("paid amount cannot exceed total amount: %w", utils.ErrorInvalidArgument)
	}
	if input.User == "" {
		return fmt.Errorf("user is required: %w", utils.ErrorInvalidArgument)
	}
	return nil
}

// RecordPayment appends a payment to an open till. A closed till rejects
// the write. Replays with the same idempotency key return the original row.
func RecordPayment(ctx context.Context, input *NewPayment) (*Payment, error) {

	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	// replay short-circuits before any validation against current state
	if input.IdempotencyKey != nil && *input.IdempotencyKey != "" {
		if existing, err := findRecordedPayment(ctx, companyId, *input.IdempotencyKey); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	till, err := utils.FetchModel[Till](ctx, companyId, input.TillId)
	if err != nil {
		return nil, err
	}
	if till.SubsidiaryId != input.SubsidiaryId {
		return nil, fmt.Errorf("till does not belong to subsidiary: %w", utils.ErrorInvalidArgument)
	}
	if till.Status != TillStatusOpen {
		return nil, fmt.Errorf("till is closed: %w", utils.ErrorInvalidState)
	}
	if err := input.validate(ctx, companyId); err != nil {
		return nil, err
	}

	status := PaymentStatusPaid
	if input.Status != nil {
		status = *input.Status
	}

	payment := Payment{
		CompanyId:       companyId,
		SubsidiaryId:    input.SubsidiaryId,
		TillId:          input.TillId,
		SaleId:          input.SaleId,
		PurchaseId:      input.PurchaseId,
		PaymentType:     input.PaymentType,
		PaymentMethod:   input.PaymentMethod,
		Status:          status,
		PaymentDate:     time.Now(),
		DueDate:         input.DueDate,
		TotalAmount:     input.TotalAmount,
		PaidAmount:      input.PaidAmount,
		ReferenceNumber: input.ReferenceNumber,
		Notes:           input.Notes,
		User:            input.User,
		IsActive:        utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()

	// Re-check under a row lock so a concurrent CloseTill cannot slip a
	// payment into a till it is closing. CloseTill locks the same row.
	var lockedTill Till
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND id = ?", companyId, input.TillId).
		Take(&lockedTill).Error; err != nil {
		tx.Rollback()
		return nil, utils.ErrorRecordNotFound
	}
	if lockedTill.Status != TillStatusOpen {
		tx.Rollback()
		return nil, fmt.Errorf("till is closed: %w", utils.ErrorInvalidState)
	}

	if err := tx.WithContext(ctx).Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if input.IdempotencyKey != nil && *input.IdempotencyKey != "" {
		key := IdempotencyKey{
			CompanyId:   companyId,
			HandlerName: recordPaymentHandler,
			MessageId:   *input.IdempotencyKey,
			Status:      IdempotencyStatusSucceeded,
			ReferenceId: payment.ID,
		}
		if err := tx.WithContext(ctx).Create(&key).Error; err != nil {
			tx.Rollback()
			// concurrent replay won the race, hand back its row
			if strings.Contains(err.Error(), "Duplicate entry") {
				return findRecordedPayment(ctx, companyId, *input.IdempotencyKey)
			}
			return nil, err
		}
	}

	if config.TillEventsEnabled() {
		err = WritePosEvent(ctx, tx, companyId, payment.PaymentDate, payment.ID, EventReferenceTypePayment, EventActionCreate, payment)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

func findRecordedPayment(ctx context.Context, companyId string, idempotencyKey string) (*Payment, error) {
	db := config.GetDB()
	var key IdempotencyKey
	err := db.WithContext(ctx).
		Where("company_id = ? AND handler_name = ? AND message_id = ?", companyId, recordPaymentHandler, idempotencyKey).
		First(&key).Error
	if err != nil {
		// only a missing key means "no prior payment"; a failed read must
		// not let a replay insert a duplicate
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return utils.FetchModel[Payment](ctx, companyId, key.ReferenceId)
}

// CancelPayment flips the status while the till is still open. The row stays.
func CancelPayment(ctx context.Context, id int) (*Payment, error) {

	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	payment, err := utils.FetchModel[Payment](ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if payment.Status == PaymentStatusCancelled {
		return nil, fmt.Errorf("payment is already cancelled: %w", utils.ErrorInvalidState)
	}

	db := config.GetDB()
	tx := db.Begin()

	// Check the till under a row lock so a concurrent CloseTill cannot
	// flip a payment it already froze into the closing summary.
	var lockedTill Till
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND id = ?", companyId, payment.TillId).
		Take(&lockedTill).Error; err != nil {
		tx.Rollback()
		return nil, utils.ErrorRecordNotFound
	}
	if lockedTill.Status != TillStatusOpen {
		tx.Rollback()
		return nil, fmt.Errorf("till is closed: %w", utils.ErrorInvalidState)
	}

	if err := tx.WithContext(ctx).Model(&payment).UpdateColumn("Status", PaymentStatusCancelled).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if config.TillEventsEnabled() {
		err = WritePosEvent(ctx, tx, companyId, time.Now(), payment.ID, EventReferenceTypePayment, EventActionCancel, payment)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	payment.Status = PaymentStatusCancelled
	return payment, nil
}

func GetPayment(ctx context.Context, id int) (*Payment, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return utils.FetchModel[Payment](ctx, companyId, id)
}

func GetPayments(ctx context.Context, tillId *int, subsidiaryId *int, status *PaymentStatus) ([]*Payment, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("company_id = ?", companyId)
	if tillId != nil && *tillId > 0 {
		dbCtx = dbCtx.Where("till_id = ?", *tillId)
	}
	if subsidiaryId != nil && *subsidiaryId > 0 {
		dbCtx = dbCtx.Where("subsidiary_id = ?", *subsidiaryId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	var results []*Payment
	if err := dbCtx.Order("payment_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
