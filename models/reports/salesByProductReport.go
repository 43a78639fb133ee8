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

type SalesByProductRow struct {
	ProductId     int             `json:"productId"`
	ProductCode   string          `json:"productCode"`
	ProductName   string          `json:"productName"`
	SoldQty       decimal.Decimal `json:"soldQty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
}

func GetSalesByProductReport(ctx context.Context, fromDate time.Time, toDate time.Time, subsidiaryId *int, search *string) ([]*SalesByProductRow, error) {
	sqlT := `
SELECT
    sale_details.product_id,
    products.code AS product_code,
    products.name AS product_name,
    SUM(sale_details.quantity) AS sold_qty,
    SUM(sale_details.total) AS total_amount,
    SUM(sale_details.discount) AS total_discount,
    AVG(sale_details.unit_price) AS average_price
FROM
    sales
        JOIN
    sale_details ON sale_details.sale_id = sales.id
        JOIN
    products ON products.id = sale_details.product_id
WHERE
    sales.company_id = @companyId
        AND sales.is_active = 1
        AND sales.sale_date BETWEEN @fromDate AND @toDate
        {{- if .subsidiaryId }} AND sales.subsidiary_id = @subsidiaryId {{- end }}
        {{- if .search }} AND (products.name LIKE @search OR products.code LIKE @search) {{- end }}
GROUP BY sale_details.product_id , products.code , products.name
ORDER BY total_amount DESC;
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
		"search":       utils.DereferencePtr(search),
	})
	if err != nil {
		return nil, err
	}

	var results []*SalesByProductRow
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"companyId":    companyId,
		"fromDate":     fromDate,
		"toDate":       toDate,
		"subsidiaryId": subsidiaryId,
		"search":       "%" + utils.DereferencePtr(search) + "%",
	}).Scan(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
