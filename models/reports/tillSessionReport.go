package reports

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/models"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/shopspring/decimal"
)

// TillSessionRow is one cash session with its per-method collected totals.
// For an open till expected_amount is computed from the payments so far.
type TillSessionRow struct {
	TillId         int               `json:"tillId"`
	TillName       string            `json:"tillName"`
	SubsidiaryName string            `json:"subsidiaryName"`
	OpeningUser    string            `json:"openingUser"`
	ClosingUser    string            `json:"closingUser"`
	Status         models.TillStatus `json:"status"`
	DateOpen       time.Time         `json:"dateOpen"`
	DateClose      *time.Time        `json:"dateClose"`
	OpeningAmount  decimal.Decimal   `json:"openingAmount"`
	ExpectedAmount decimal.Decimal   `json:"expectedAmount"`
	CountedAmount  decimal.Decimal   `json:"countedAmount"`
	Difference     decimal.Decimal   `json:"difference"`
	CashTotal      decimal.Decimal   `json:"cashTotal"`
	CardTotal      decimal.Decimal   `json:"cardTotal"`
	YapeTotal      decimal.Decimal   `json:"yapeTotal"`
	PlinTotal      decimal.Decimal   `json:"plinTotal"`
}

func GetTillSessionReport(ctx context.Context, fromDate time.Time, toDate time.Time, subsidiaryId *int) ([]*TillSessionRow, error) {
	sqlT := `
SELECT
    tills.id AS till_id,
    tills.name AS till_name,
    subsidiaries.name AS subsidiary_name,
    tills.opening_user,
    tills.closing_user,
    tills.status,
    tills.date_open,
    tills.date_close,
    tills.opening_amount,
    COALESCE(tills.expected_amount, COALESCE(pm.collected, 0)) AS expected_amount,
    COALESCE(tills.counted_amount, 0) AS counted_amount,
    COALESCE(tills.difference, 0) AS difference,
    COALESCE(pm.cash_total, 0) AS cash_total,
    COALESCE(pm.card_total, 0) AS card_total,
    COALESCE(pm.yape_total, 0) AS yape_total,
    COALESCE(pm.plin_total, 0) AS plin_total
FROM
    tills
        JOIN
    subsidiaries ON subsidiaries.id = tills.subsidiary_id
        LEFT JOIN
    (SELECT
        till_id,
        SUM(paid_amount) AS collected,
        SUM(CASE WHEN payment_method = 'E' THEN paid_amount ELSE 0 END) AS cash_total,
        SUM(CASE WHEN payment_method = 'T' THEN paid_amount ELSE 0 END) AS card_total,
        SUM(CASE WHEN payment_method = 'Y' THEN paid_amount ELSE 0 END) AS yape_total,
        SUM(CASE WHEN payment_method = 'P' THEN paid_amount ELSE 0 END) AS plin_total
    FROM
        payments
    WHERE
        company_id = @companyId AND status = 'PAID'
    GROUP BY till_id) AS pm ON pm.till_id = tills.id
WHERE
    tills.company_id = @companyId
        AND tills.date_open BETWEEN @fromDate AND @toDate
        {{- if .subsidiaryId }} AND tills.subsidiary_id = @subsidiaryId {{- end }}
ORDER BY tills.date_open DESC;
`
	db := config.GetDB()
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	if subsidiaryId != nil && *subsidiaryId != 0 {
		if err := utils.ValidateResourceId[models.Subsidiary](ctx, companyId, *subsidiaryId); err != nil {
			return nil, errors.New("subsidiary not found")
		}
	}

	sql, err := utils.ExecTemplate(sqlT, map[string]interface{}{
		"subsidiaryId": utils.DereferencePtr(subsidiaryId),
	})
	if err != nil {
		return nil, err
	}

	var results []*TillSessionRow
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"companyId":    companyId,
		"fromDate":     fromDate,
		"toDate":       toDate,
		"subsidiaryId": subsidiaryId,
	}).Scan(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
