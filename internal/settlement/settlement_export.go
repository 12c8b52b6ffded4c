package settlement

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Settlements"

var exportHeaders = []string{
	"Period", "Category", "Worker", "Base", "Deduction", "Final",
	"Tax Rate", "Status", "Paid At", "Origin", "Overridden", "Memo",
}

// buildWorkbook renders records as one sheet with a totals row.
func buildWorkbook(items []Settlement) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	var base, deduction, final int64
	for i, s := range items {
		row := i + 2
		paidAt := ""
		if s.PaidAt != nil {
			paidAt = s.PaidAt.Format("2006-01-02")
		}
		memo := ""
		if s.Memo != nil {
			memo = *s.Memo
		}
		values := []any{
			string(s.Period), string(s.Category), s.WorkerName,
			s.BaseAmount, s.DeductionAmount, s.FinalAmount,
			s.TaxRate.String(), string(s.Status), paidAt, string(s.Origin),
			s.AmountOverridden, memo,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
		base += s.BaseAmount
		deduction += s.DeductionAmount
		final += s.FinalAmount
	}

	totalRow := len(items) + 2
	totals := []any{"Total", "", "", base, deduction, final}
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	if err := f.SetSheetRow(exportSheet, cell, &totals); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, style); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("F%d", totalRow), style); err != nil {
		return nil, err
	}
	return f, nil
}

func exportFilename(period string) string {
	if period == "" {
		return "settlements.xlsx"
	}
	return fmt.Sprintf("settlements-%s.xlsx", period)
}
