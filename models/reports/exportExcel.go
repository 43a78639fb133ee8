package reports

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// newReportFile creates a workbook with a styled, frozen header row.
func newReportFile(headings []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(exportSheet, cell, h)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(headings), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastCell, headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, rowNo int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
		if err != nil {
			return err
		}
		if d, ok := value.(decimal.Decimal); ok {
			value, _ = d.Float64()
		}
		if err := f.SetCellValue(exportSheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func writeWorkbook(w http.ResponseWriter, f *excelize.File, filename string) error {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	return f.Write(w)
}

func ExportTillSessionExcel(ctx context.Context, w http.ResponseWriter, fromDate time.Time, toDate time.Time, subsidiaryId *int) error {
	rows, err := GetTillSessionReport(ctx, fromDate, toDate, subsidiaryId)
	if err != nil {
		return err
	}

	f, err := newReportFile([]string{
		"Till", "Subsidiary", "OpenedBy", "ClosedBy", "Status",
		"DateOpen", "DateClose", "Opening", "Expected", "Counted",
		"Difference", "Cash", "Card", "Yape", "Plin",
	})
	if err != nil {
		return err
	}

	totalExpected := decimal.Zero
	totalCounted := decimal.Zero
	totalDifference := decimal.Zero
	for i, r := range rows {
		dateClose := ""
		if r.DateClose != nil {
			dateClose = r.DateClose.Format(time.DateTime)
		}
		if err := setRow(f, i+2, []interface{}{
			r.TillName, r.SubsidiaryName, r.OpeningUser, r.ClosingUser, string(r.Status),
			r.DateOpen.Format(time.DateTime), dateClose, r.OpeningAmount, r.ExpectedAmount, r.CountedAmount,
			r.Difference, r.CashTotal, r.CardTotal, r.YapeTotal, r.PlinTotal,
		}); err != nil {
			return err
		}
		totalExpected = totalExpected.Add(r.ExpectedAmount)
		totalCounted = totalCounted.Add(r.CountedAmount)
		totalDifference = totalDifference.Add(r.Difference)
	}

	if err := setRow(f, len(rows)+2, []interface{}{
		"Total", "", "", "", "", "", "", "", totalExpected, totalCounted, totalDifference,
	}); err != nil {
		return err
	}

	filename := fmt.Sprintf("till_sessions_%s_%s.xlsx",
		fromDate.Format(time.DateOnly), toDate.Format(time.DateOnly))
	return writeWorkbook(w, f, filename)
}

func ExportSalesByProductExcel(ctx context.Context, w http.ResponseWriter, fromDate time.Time, toDate time.Time, subsidiaryId *int, search *string) error {
	rows, err := GetSalesByProductReport(ctx, fromDate, toDate, subsidiaryId, search)
	if err != nil {
		return err
	}

	f, err := newReportFile([]string{
		"Code", "Product", "SoldQty", "Amount", "Discount", "AveragePrice",
	})
	if err != nil {
		return err
	}

	totalAmount := decimal.Zero
	for i, r := range rows {
		if err := setRow(f, i+2, []interface{}{
			r.ProductCode, r.ProductName, r.SoldQty, r.TotalAmount, r.TotalDiscount, r.AveragePrice,
		}); err != nil {
			return err
		}
		totalAmount = totalAmount.Add(r.TotalAmount)
	}

	if err := setRow(f, len(rows)+2, []interface{}{
		"Total", "", "", totalAmount,
	}); err != nil {
		return err
	}

	filename := fmt.Sprintf("sales_by_product_%s_%s.xlsx",
		fromDate.Format(time.DateOnly), toDate.Format(time.DateOnly))
	return writeWorkbook(w, f, filename)
}
