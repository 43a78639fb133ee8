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

type Sale struct {
	ID               int              `gorm:"primary_key" json:"id"`
	CompanyId        string           `gorm:"index;not null" json:"company_id" binding:"required"`
	SubsidiaryId     int              `gorm:"index;not null;index:idx_sale_sub_date,priority:1" json:"subsidiary_id" binding:"required"`
	SequenceNo       int64            `gorm:"index" json:"sequence_no"`
	Serial           string           `gorm:"size:10" json:"serial"`
	Number           string           `gorm:"size:30" json:"number"`
	ClientId         int              `gorm:"index" json:"client_id"`
	EmployeeId       int              `gorm:"index" json:"employee_id"`
	SaleDate         time.Time        `gorm:"index;not null;index:idx_sale_sub_date,priority:2" json:"sale_date"`
	Currency         string           `gorm:"size:3;default:PEN" json:"currency"`
	PaymentCondition PaymentCondition `gorm:"size:10;default:CASH" json:"payment_condition"`
	Subtotal         decimal.Decimal  `gorm:"type:decimal(15,2)" json:"subtotal"`
	Discount         decimal.Decimal  `gorm:"type:decimal(15,2)" json:"discount"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(15,2)" json:"total_amount"`
	Notes            string           `gorm:"type:text" json:"notes"`
	IsActive         *bool            `gorm:"not null;default:true" json:"is_active"`
	Details          []SaleDetail     `gorm:"foreignKey:SaleId" json:"details"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type SaleDetail struct {
	ID        int             `gorm:"primary_key" json:"id"`
	CompanyId string          `gorm:"index;not null" json:"company_id"`
	SaleId    int             `gorm:"index;not null" json:"sale_id"`
	ProductId int             `gorm:"index;not null" json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Discount  decimal.Decimal `gorm:"type:decimal(15,2)" json:"discount"`
	Total     decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSale struct {
	SubsidiaryId     int              `json:"subsidiary_id" binding:"required"`
	Serial           string           `json:"serial"`
	ClientId         int              `json:"client_id"`
	EmployeeId       int              `json:"employee_id"`
	SaleDate         time.Time        `json:"sale_date"`
	PaymentCondition PaymentCondition `json:"payment_condition"`
	Discount         decimal.Decimal  `json:"discount"`
	Notes            string           `json:"notes"`
	Details          []*NewSaleDetail `json:"details" binding:"required"`
}

type NewSaleDetail struct {
	ProductId int             `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

type SalesEdge Edge[Sale]

type SalesConnection struct {
	PageInfo *PageInfo    `json:"pageInfo"`
	Edges    []*SalesEdge `json:"edges"`
}

func (obj Sale) GetCompanyId() string       { return obj.CompanyId }
func (obj SaleDetail) GetCompanyId() string { return obj.CompanyId }

func (s Sale) GetCursor() string {
	return s.SaleDate.String()
}

// validate input for both create & update. (id = 0 for create)
func (input *NewSale) validate(ctx context.Context, companyId string, _ int) error {
	if err := utils.ValidateResourceId[Subsidiary](ctx, companyId, input.SubsidiaryId); err != nil {
		return errors.New("subsidiary not found")
	}
	if input.ClientId > 0 {
		count, err := utils.ResourceCountWhere[ClientSupplier](ctx, companyId, "id = ? AND is_client = 1", input.ClientId)
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("client not found")
		}
	}
	if input.EmployeeId > 0 {
		if err := utils.ValidateResourceId[Employee](ctx, companyId, input.EmployeeId); err != nil {
			return errors.New("employee not found")
		}
	}
	if len(input.Details) == 0 {
		return errors.New("sale must have at least one detail")
	}
	for _, detail := range input.Details {
		if err := utils.ValidateResourceId[Product](ctx, companyId, detail.ProductId); err != nil {
			return errors.New("product not found")
		}
		if !detail.Quantity.IsPositive() {
			return errors.New("detail quantity must be positive")
		}
		if detail.UnitPrice.IsNegative() || detail.Discount.IsNegative() {
			return errors.New("detail amounts cannot be negative")
		}
	}
	if input.Discount.IsNegative() {
		return errors.New("discount cannot be negative")
	}
	return nil
}

func CreateSale(ctx context.Context, input *NewSale) (*Sale, error) {

	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := input.validate(ctx, companyId, 0); err != nil {
		return nil, err
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}
	paymentCondition := input.PaymentCondition
	if paymentCondition == "" {
		paymentCondition = PaymentConditionCash
	}

	// build detail rows, falling back to the catalog price when none given
	subtotal := decimal.Zero
	details := make([]SaleDetail, 0, len(input.Details))
	for _, d := range input.Details {
		unitPrice := d.UnitPrice
		if unitPrice.IsZero() {
			product, err := GetProduct(ctx, d.ProductId)
			if err != nil {
				return nil, err
			}
			unitPrice = product.Price
		}
		lineTotal := d.Quantity.Mul(unitPrice).Sub(d.Discount)
		if lineTotal.IsNegative() {
			return nil, errors.New("detail discount exceeds line amount")
		}
		subtotal = subtotal.Add(lineTotal)
		details = append(details, SaleDetail{
			CompanyId: companyId,
			ProductId: d.ProductId,
			Quantity:  d.Quantity,
			UnitPrice: unitPrice,
			Discount:  d.Discount,
			Total:     lineTotal,
		})
	}
	totalAmount := subtotal.Sub(input.Discount)
	if totalAmount.IsNegative() {
		return nil, errors.New("discount exceeds sale amount")
	}

	sale := Sale{
		CompanyId:        companyId,
		SubsidiaryId:     input.SubsidiaryId,
		Serial:           input.Serial,
		ClientId:         input.ClientId,
		EmployeeId:       input.EmployeeId,
		SaleDate:         saleDate,
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

	seqNo, err := utils.GetSequence[Sale](ctx, companyId)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	sale.SequenceNo = seqNo
	sale.Number = sale.Serial + "-" + fmt.Sprint(seqNo)

	// stock goes out with the sale, all or nothing
	for _, d := range sale.Details {
		if err := ValidateProductStock(tx, ctx, companyId, d.ProductId, d.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := AdjustProductStock(tx, ctx, companyId, d.ProductId, d.Quantity.Neg()); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.WithContext(ctx).Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	err = WritePosEvent(ctx, tx, companyId, sale.SaleDate, sale.ID, EventReferenceTypeSale, EventActionCreate, sale)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &sale, nil
}

// CancelSale deactivates the sale and returns its stock. Detail rows stay
// untouched for the audit trail.
func CancelSale(ctx context.Context, id int) (*Sale, error) {

	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	sale, err := utils.FetchModel[Sale](ctx, companyId, id, "Details")
	if err != nil {
		return nil, err
	}
	if sale.IsActive != nil && !*sale.IsActive {
		return nil, fmt.Errorf("sale is already cancelled: %w", utils.ErrorInvalidState)
	}

	db := config.GetDB()
	tx := db.Begin()

	for _, d := range sale.Details {
		if err := AdjustProductStock(tx, ctx, companyId, d.ProductId, d.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.WithContext(ctx).Model(&sale).UpdateColumn("IsActive", false).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	err = WritePosEvent(ctx, tx, companyId, time.Now(), sale.ID, EventReferenceTypeSale, EventActionCancel, sale)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return sale, nil
}

func GetSale(ctx context.Context, id int) (*Sale, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return utils.FetchModel[Sale](ctx, companyId, id, "Details")
}

func PaginateSales(ctx context.Context, limit *int, after *string, subsidiaryId *int, fromDate *time.Time, toDate *time.Time) (*SalesConnection, error) {
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
		dbCtx.Where("sale_date >= ?", *fromDate)
	}
	if toDate != nil {
		dbCtx.Where("sale_date <= ?", *toDate)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Sale](dbCtx, *limit, after, "sale_date", "<")
	if err != nil {
		return nil, err
	}
	var connection SalesConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		salesEdge := SalesEdge(edge)
		connection.Edges = append(connection.Edges, &salesEdge)
	}
	return &connection, nil
}
