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

// Till is one cash session of a subsidiary. A subsidiary has at most one
// open till at a time: the pre-check in OpenTill catches the common case and
// the unique index on (subsidiary_id, open_marker) catches races, since
// open_marker is non-null only while the till is open.
type Till struct {
	ID             int              `gorm:"primary_key" json:"id"`
	CompanyId      string           `gorm:"index;not null" json:"company_id" binding:"required"`
	SubsidiaryId   int              `gorm:"index;not null;index:uniq_open_till,unique,priority:1" json:"subsidiary_id" binding:"required"`
	Name           string           `gorm:"size:100" json:"name"`
	Status         TillStatus       `gorm:"type:enum('A', 'C');default:C" json:"status"`
	OpenMarker     *bool            `gorm:"index:uniq_open_till,unique,priority:2" json:"-"`
	OpeningUser    string           `gorm:"size:100" json:"opening_user"`
	ClosingUser    string           `gorm:"size:100" json:"closing_user"`
	OpeningAmount  decimal.Decimal  `gorm:"type:decimal(15,2)" json:"opening_amount"`
	CountedAmount  *decimal.Decimal `gorm:"type:decimal(15,2)" json:"counted_amount"`
	ExpectedAmount *decimal.Decimal `gorm:"type:decimal(15,2)" json:"expected_amount"`
	Difference     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"difference"`
	TotalSales     decimal.Decimal  `gorm:"type:decimal(15,2)" json:"total_sales"`
	DateOpen       time.Time        `gorm:"index;not null" json:"date_open"`
	DateClose      *time.Time       `json:"date_close"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTill struct {
	SubsidiaryId  int             `json:"subsidiary_id" binding:"required"`
	Name          string          `json:"name"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	OpeningUser   string          `json:"opening_user" binding:"required"`
}

func (obj Till) GetCompanyId() string { return obj.CompanyId }

// CloseTillResult pairs the closed till with its reconciliation summary.
type CloseTillResult struct {
	Till    *Till                  `json:"till"`
	Summary *ReconciliationSummary `json:"summary"`
}

// MethodAmount is one reconciliation line.
type MethodAmount struct {
	Method PaymentMethod   `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// ReconciliationSummary reports collected amounts per payment method plus
// the expected vs counted cash position. Counted and Difference stay nil
// until the till is closed.
type ReconciliationSummary struct {
	TillId         int              `json:"till_id"`
	OpeningAmount  decimal.Decimal  `json:"opening_amount"`
	Lines          []*MethodAmount  `json:"lines"`
	TotalCollected decimal.Decimal  `json:"total_collected"`
	ExpectedAmount decimal.Decimal  `json:"expected_amount"`
	CountedAmount  *decimal.Decimal `json:"counted_amount"`
	Difference     *decimal.Decimal `json:"difference"`
}

// BuildReconciliationSummary folds per-method totals into a summary.
// Methods without payments are omitted; line order follows AllPaymentMethods
// so output is stable.
func BuildReconciliationSummary(tillId int, openingAmount decimal.Decimal, totals map[PaymentMethod]decimal.Decimal, counted *decimal.Decimal) *ReconciliationSummary {
	summary := ReconciliationSummary{
		TillId:        tillId,
		OpeningAmount: openingAmount,
		Lines:         make([]*MethodAmount, 0, len(totals)),
	}
	total := decimal.Zero
	for _, method := range AllPaymentMethods {
		amount, ok := totals[method]
		if !ok {
			continue
		}
		summary.Lines = append(summary.Lines, &MethodAmount{Method: method, Amount: amount})
		total = total.Add(amount)
	}
	summary.TotalCollected = total
	// Expected covers PAID payments only; the opening float is reported
	// separately and not counted against the difference.
	summary.ExpectedAmount = total
	if counted != nil {
		summary.CountedAmount = counted
		difference := counted.Sub(summary.ExpectedAmount)
		summary.Difference = &difference
	}
	return &summary
}

// fetchTillMethodTotals sums PAID payments of the till grouped by method.
func fetchTillMethodTotals(dbCtx *gorm.DB, companyId string, tillId int) (map[PaymentMethod]decimal.Decimal, error) {
	var rows []struct {
		PaymentMethod PaymentMethod
		Amount        decimal.Decimal
	}
	err := dbCtx.Model(&Payment{}).
		Select("payment_method, SUM(paid_amount) as amount").
		Where("company_id = ? AND till_id = ? AND status = ?", companyId, tillId, PaymentStatusPaid).
		Group("payment_method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[PaymentMethod]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.PaymentMethod] = row.Amount
	}
	return totals, nil
}

func OpenTill(ctx context.Context, input *NewTill) (*Till, error) {

	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := utils.ValidateResourceId[Subsidiary](ctx, companyId, input.SubsidiaryId); err != nil {
		return nil, fmt.Errorf("subsidiary not found: %w", utils.ErrorRecordNotFound)
	}
	if input.OpeningAmount.IsNegative() {
		return nil, fmt.Errorf("opening amount cannot be negative: %w", utils.ErrorInvalidArgument)
	}
	if input.OpeningUser == "" {
		return nil, fmt.Errorf("opening user is required: %w", utils.ErrorInvalidArgument)
	}

	// serialize racing opens on the same subsidiary
	release, err := utils.SubsidiaryLock(ctx, input.SubsidiaryId, "models", "OpenTill")
	if err != nil {
		return nil, err
	}
	defer release()

	count, err := utils.ResourceCountWhere[Till](ctx, companyId, "subsidiary_id = ? AND status = ?", input.SubsidiaryId, TillStatusOpen)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("subsidiary already has an open till: %w", utils.ErrorConflict)
	}

	till := Till{
		CompanyId:     companyId,
		SubsidiaryId:  input.SubsidiaryId,
		Name:          input.Name,
		Status:        TillStatusOpen,
		OpenMarker:    utils.NewTrue(),
		OpeningUser:   input.OpeningUser,
		OpeningAmount: input.OpeningAmount,
		TotalSales:    decimal.Zero,
		DateOpen:      time.Now(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&till).Error; err != nil {
		tx.Rollback()
		if strings.Contains(err.Error(), "Duplicate entry") {
			return nil, fmt.Errorf("subsidiary already has an open till: %w", utils.ErrorConflict)
		}
		return nil, err
	}
	if config.TillEventsEnabled() {
		err = WritePosEvent(ctx, tx, companyId, till.DateOpen, till.ID, EventReferenceTypeTill, EventActionCreate, till)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &till, nil
}

// CloseTill reconciles and closes the till. Closing is terminal.
func CloseTill(ctx context.Context, tillId int, countedAmount decimal.Decimal, closingUser string) (*Till, *ReconciliationSummary, error) {

	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, nil, errors.New("company id is required")
	}
	if countedAmount.IsNegative() {
		return nil, nil, fmt.Errorf("counted amount cannot be negative: %w", utils.ErrorInvalidArgument)
	}
	if closingUser == "" {
		return nil, nil, fmt.Errorf("closing user is required: %w", utils.ErrorInvalidArgument)
	}

	till, err := utils.FetchModel[Till](ctx, companyId, tillId)
	if err != nil {
		return nil, nil, err
	}
	if till.Status == TillStatusClosed {
		return nil, nil, fmt.Errorf("till is already closed: %w", utils.ErrorInvalidState)
	}

	release, err := utils.SubsidiaryLock(ctx, till.SubsidiaryId, "models", "CloseTill")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	db := config.GetDB()
	tx := db.Begin()

	// Lock the till row before aggregating so in-flight RecordPayment
	// transactions either commit before the aggregate or fail the status
	// re-check after the close commits.
	var lockedTill Till
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND id = ?", companyId, tillId).
		Take(&lockedTill).Error; err != nil {
		tx.Rollback()
		return nil, nil, utils.ErrorRecordNotFound
	}
	if lockedTill.Status == TillStatusClosed {
		tx.Rollback()
		return nil, nil, fmt.Errorf("till is already closed: %w", utils.ErrorInvalidState)
	}

	totals, err := fetchTillMethodTotals(tx.WithContext(ctx), companyId, tillId)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	summary := BuildReconciliationSummary(tillId, till.OpeningAmount, totals, &countedAmount)

	var totalSales decimal.Decimal
	err = tx.WithContext(ctx).Model(&Payment{}).
		Select("COALESCE(SUM(paid_amount), 0)").
		Where("company_id = ? AND till_id = ? AND status = ? AND payment_type = ?",
			companyId, tillId, PaymentStatusPaid, PaymentTypeSale).
		Scan(&totalSales).Error
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	now := time.Now()
	err = tx.WithContext(ctx).Model(&till).Updates(map[string]interface{}{
		"Status":         TillStatusClosed,
		"OpenMarker":     nil,
		"ClosingUser":    closingUser,
		"CountedAmount":  countedAmount,
		"ExpectedAmount": summary.ExpectedAmount,
		"Difference":     summary.Difference,
		"TotalSales":     totalSales,
		"DateClose":      now,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if config.TillEventsEnabled() {
		err = WritePosEvent(ctx, tx, companyId, now, till.ID, EventReferenceTypeTill, EventActionClose, till)
		if err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	till.Status = TillStatusClosed
	till.OpenMarker = nil
	till.ClosingUser = closingUser
	till.CountedAmount = &countedAmount
	till.ExpectedAmount = &summary.ExpectedAmount
	till.Difference = summary.Difference
	till.TotalSales = totalSales
	till.DateClose = &now

	return till, summary, nil
}

// GetOpenTill returns the open till of the subsidiary, or nil when none is
// open. Absence is a normal state, not an error; closed rows never match.
func GetOpenTill(ctx context.Context, subsidiaryId int) (*Till, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	var till Till
	err := db.WithContext(ctx).
		Where("company_id = ? AND subsidiary_id = ? AND status = ?", companyId, subsidiaryId, TillStatusOpen).
		First(&till).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &till, nil
}

func GetTill(ctx context.Context, id int) (*Till, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return utils.FetchModel[Till](ctx, companyId, id)
}

func GetTills(ctx context.Context, subsidiaryId *int, status *TillStatus) ([]*Till, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("company_id = ?", companyId)
	if subsidiaryId != nil && *subsidiaryId > 0 {
		dbCtx = dbCtx.Where("subsidiary_id = ?", *subsidiaryId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	var results []*Till
	if err := dbCtx.Order("date_open DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SummarizeTill is read-only and safe to call repeatedly, for open and
// closed tills alike. An open till reflects payments recorded so far.
func SummarizeTill(ctx context.Context, tillId int) (*ReconciliationSummary, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	till, err := utils.FetchModel[Till](ctx, companyId, tillId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	totals, err := fetchTillMethodTotals(db.WithContext(ctx), companyId, tillId)
	if err != nil {
		return nil, err
	}
	return BuildReconciliationSummary(tillId, till.OpeningAmount, totals, till.CountedAmount), nil
}
