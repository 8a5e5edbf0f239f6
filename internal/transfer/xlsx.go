package transfer

import (
	"time"

	"github.com/xuri/excelize/v2"

	"clientes/internal/core"
)

const sheetName = "Clientes"

var xlsxHeader = []interface{}{
	"ID", "Empresa", "Dueño", "Teléfono", "Email",
	"Estado", "Plan", "Fecha Venta", "Fecha Cobro",
}

// XLSXFileName builds the download name for a spreadsheet export.
func XLSXFileName(now time.Time) string {
	return "clientes_exportados_" + now.UTC().Format("2006-01-02") + ".xlsx"
}

// EncodeXLSX renders the records as a single-sheet workbook. Dates appear as
// calendar days in loc, the same way the table displays them.
func EncodeXLSX(recs []core.ClientRecord, loc *time.Location) ([]byte, error) {
	if len(recs) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeader); err != nil {
		return nil, err
	}

	for i, rec := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			rec.ID,
			rec.BusinessName,
			rec.OwnerName,
			rec.Phone,
			rec.Email,
			string(rec.Status),
			string(rec.PlanType),
			core.FormatDay(rec.SaleDate, loc),
			core.FormatDay(rec.PaymentDate, loc),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
