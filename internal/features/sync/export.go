package sync

import (
	"context"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"External ID", "Title", "Category", "Brand",
	"Price USD", "Price COP", "Stock", "Rating", "Synced At",
}

// ExportToExcel renders the active synced products as an xlsx workbook
// for the admin screen's download button.
func (s *SyncServiceImpl) ExportToExcel(ctx context.Context) ([]byte, error) {
	products, err := s.Repo.List(ctx, "", "")
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Synced Products"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, p := range products {
		priceCOP := ""
		if p.PriceCOP.Valid {
			priceCOP = p.PriceCOP.Decimal.StringFixed(2)
		}
		values := []interface{}{
			p.ExternalID, p.Title, p.Category, p.Brand,
			p.PriceUSD.StringFixed(2), priceCOP, p.Stock,
			p.Rating.String(), p.SyncedAt,
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
