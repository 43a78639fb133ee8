package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID               int              `gorm:"primary_key" json:"id"`
	CompanyId        string           `gorm:"index;not null" json:"company_id" binding:"required"`
	SubsidiaryId     int              `gorm:"index;not null;index:idx_purchase_sub_date,priority:1" json:"subsidiary_id" binding:"required"`
	SequenceNo       int64            `gorm:"index" json:"sequence_no"`
	Serial           string           `gorm:"size:10" json:"serial"`
	Number           string           `gorm:"size:30" json:"number"`
	SupplierId       int              `gorm:"index" json:"supplier_id"`
	PurchaseDate     time.Time        `gorm:"index;not null;index:idx_purchase_sub_date,priority:2" json:"purchase_date"`
	Currency         string           `gorm:"size:3;default:PEN" json:"currency"`
	PaymentCondition PaymentCondition `gorm:"size:10;default:CASH" json:"payment_condition"`
	Subtotal         decimal.Decimal  `gorm:"type:decimal(15,2)" json:"subtotal"`
	Discount         decimal.Decimal  `gorm:"type:decimal(15,2)" json:"discount"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(15,2)" json:"total_amount"`
	Notes            string           `gorm:"type:text" json:"notes"`
	IsActive         *bool            `gorm:"not null;default:true" json:"is_active"`
	Details          []PurchaseDetail `gorm:"foreignKey:PurchaseId" json:"details"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type PurchaseDetail struct {
	ID         int             `gorm:"primary_key" json:"id"`
	CompanyId  string          `gorm:"index;not null" json:"company_id"`
	PurchaseId int             `gorm:"index;not null" json:"purchase_id"`
	ProductId  int             `gorm:"index;not null" json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"quantity" binding:"required"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_cost"`
	Total      decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPurchase struct {
	SubsidiaryId     int                  `json:"subsidiary_id" binding:"required"`
	Serial           string               `json:"serial"`
	SupplierId       int                  `json:"supplier_id"`
	PurchaseDate     time.Time            `json:"purchase_date"`
	PaymentCondition PaymentCondition     `json:"payment_condition"`
	Discount         decimal.Decimal      `json:"discount"`
	Notes            string               `json:"notes"`
	Details          []*NewPurchaseDetail `json:"details" binding:"required"`
}

type NewPurchaseDetail struct {
	ProductId int             `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type PurchasesEdge Edge[Purchase]

type PurchasesConnection struct {
	PageInfo *PageInfo        `json:"pageInfo"`
	Edges    []*PurchasesEdge `json:"edges"`
}

func (obj Purchase) GetCompanyId() string       { return obj.CompanyId }
func (obj PurchaseDetail) GetCompanyId() string { return obj.CompanyId }

func (p Purchase) GetCursor() string {
	return p.PurchaseDate.String()
}

// validate input for both create & update. (id = 0 for create)
func (input *NewPurchase) validate(ctx context.Context, companyId string, _ int) error {
	if err := utils.ValidateResourceId[Subsidiary](ctx, companyId, input.SubsidiaryId); err != nil {
		return errors.New("subsidiary not found")
	}
	if input.SupplierId > 0 {
		count, err := utils.ResourceCountWhere[ClientSupplier](ctx, companyId, "id = ? AND is_supplier = 1", input.SupplierId)
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("supplier not found")
		}
	}
	if len(input.Details) == 0 {
		return errors.New("purchase must have at least one detail")
	}
	for _, detail := range input.Details {
		if err := utils.ValidateResourceId[Product](ctx, companyId, detail.ProductId); err != nil {
			return errors.New("product not found")
		}
		if !detail.Quantity.IsPositive() {
			return errors.New("detail quantity must be positive")
		}
		if detail.UnitCost.IsNegative() {
			return errors.New("detail amounts cannot be negative")
		}
	}
	if input.Discount.IsNegative() {
		return errors.New("discount cannot be negative")
	}
	return nil
}

func buildPurchaseDetails(companyId string, input *NewPurchase) ([]PurchaseDetail, decimal.Decimal) {
	subtotal := decimal.Zero
	details := make([]PurchaseDetail, 0, len(input.Details))
	for _, d := range input.Details {
		lineTotal := d.Quantity.Mul(d.UnitCost)
		subtotal = subtotal.Add(lineTotal)
		details = append(details, PurchaseDetail{
			CompanyId: companyId,
			ProductId: d.ProductId,
			Quantity:  d.Quantity,
			UnitCost:  d.UnitCost,
			Total:     lineTotal,
		})
	}
	return details, subtotal
}

func CreatePurchase(ctx context.Context, input *NewPurchase) (*Purchase, error) {

	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := input.validate(ctx, companyId, 0); err != nil {
		return nil, err
	}

	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}
	paymentCondition := input.PaymentCondition
	if paymentCondition == "" {
		paymentCondition = PaymentConditionCash
	}

	details, subtotal := buildPurchaseDetails(companyId, input)
	totalAmount := subtotal.Sub(input.Discount)
	if totalAmount.IsNegative() {
		return nil, errors.New("discount exceeds purchase amount")
	}

	purchase := Purchase{
		CompanyId:        companyId,
		SubsidiaryId:     input.SubsidiaryId,
		Serial:           input.Serial,
		SupplierId:       input.SupplierId,
		PurchaseDate:     purchaseDate,
		Currency:         "PEN",
		PaymentCondition: paymentCondition,
		Subtotal:         subtotal,
		Discount:         input.Discount,
		TotalAmount:      totalAmount,
		Notes:            input.Notes,
		IsActive:         utils.NewTrue(),
		Details:          details,
	}

	db := config.GetDB()
	tx := db.Begin()

	seqNo, err := utils.GetSequence[Purchase](ctx, companyId)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	purchase.SequenceNo = seqNo
	purchase.Number = purchase.Serial + "-" + fmt.Sprint(seqNo)

	// stock comes in with the purchase
	for _, d := range purchase.Details {
		if err := AdjustProductStock(tx, ctx, companyId, d.ProductId, d.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.WithContext(ctx).Create(&purchase).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &purchase, nil
}

// UpdatePurchase replaces the detail rows, reversing the old stock movement
// and applying the new one in the same transaction.
func UpdatePurchase(ctx context.Context, id int, input *NewPurchase) (*Purchase, error) {

	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	beforeUpdate, err := utils.FetchModel[Purchase](ctx, companyId, id, "Details")
	if err != nil {
		return nil, err
	}
	if beforeUpdate.IsActive != nil && !*beforeUpdate.IsActive {
		return nil, fmt.Errorf("purchase is cancelled: %w", utils.ErrorInvalidState)
	}
	if err := input.validate(ctx, companyId, id); err != nil {
		return nil, err
	}

	details, subtotal := buildPurchaseDetails(companyId, input)
	totalAmount := subtotal.Sub(input.Discount)
	if totalAmount.IsNegative() {
		return nil, errors.New("discount exceeds purchase amount")
	}
	for i := range details {
		details[i].PurchaseId = id
	}

	db := config.GetDB()
	tx := db.Begin()

	// back out the previous movement before applying the new one
	for _, d := range beforeUpdate.Details {
		if err := AdjustProductStock(tx, ctx, companyId, d.ProductId, d.Quantity.Neg()); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	for _, d := range details {
		if err := AdjustProductStock(tx, ctx, companyId, d.ProductId, d.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.WithContext(ctx).Where("purchase_id = ?", id).Delete(&PurchaseDetail{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(&details).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	err = tx.WithContext(ctx).Model(&Purchase{ID: id}).Updates(map[string]interface{}{
		"SubsidiaryId":     input.SubsidiaryId,
		"Serial":           input.Serial,
		"SupplierId":       input.SupplierId,
		"PurchaseDate":     input.PurchaseDate,
		"PaymentCondition": input.PaymentCondition,
		"Subtotal":         subtotal,
		"Discount":         input.Discount,
		"TotalAmount":      totalAmount,
		"Notes":            input.Notes,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Purchase](ctx, companyId, id, "Details")
}

func GetPurchase(ctx context.Context, id int) (*Purchase, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return utils.FetchModel[Purchase](ctx, companyId, id, "Details")
}

func PaginatePurchases(ctx context.Context, limit *int, after *string, subsidiaryId *int, fromDate *time.Time, toDate *time.Time) (*PurchasesConnection, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("company_id = ?", companyId)

	if subsidiaryId != nil && *subsidiaryId > 0 {
		dbCtx.Where("subsidiary_id = ?", *subsidiaryId)
	}
	if fromDate != nil {
		dbCtx.Where("purchase_date >= ?", *fromDate)
	}
	if toDate != nil {
		dbCtx.Where("purchase_date <= ?", *toDate)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Purchase](dbCtx, *limit, after, "purchase_date", "<")
	if err != nil {
		return nil, err
	}
	var connection PurchasesConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		purchasesEdge := PurchasesEdge(edge)
		connection.Edges = append(connection.Edges, &purchasesEdge)
	}
	return &connection, nil
}
