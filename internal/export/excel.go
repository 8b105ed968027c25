// Package export renders reservation lists as Excel workbooks for the
// studio's back office.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"eclat/internal/model"
)

var reservationColumns = []string{
	"ID", "Kind", "Item", "Date", "Time",
	"First name", "Last name", "Email", "Phone",
	"Price (EUR)", "Duration (min)", "Status", "Created at",
}

// WriteReservations writes the reservations as a single-sheet workbook.
func WriteReservations(w io.Writer, reservations []model.Reservation) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Reservations"
	file.SetSheetName("Sheet1", sheet)

	if err := writeHeader(file, sheet); err != nil {
		return err
	}

	for i, r := range reservations {
		row := []any{
			r.ID, r.Kind, r.ItemName, r.Date, r.TimeSlot,
			r.FirstName, r.LastName, r.Email, r.Phone,
			float64(r.PriceCents) / 100, r.DurationMinutes, r.Status,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(file, sheet, i+2, row); err != nil {
			return err
		}
	}

	return file.Write(w)
}

func writeHeader(file *excelize.File, sheet string) error {
	for i, col := range reservationColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	style, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(reservationColumns), 1)
		_ = file.SetCellStyle(sheet, startCell, endCell, style)
	}
	return nil
}

func writeRow(file *excelize.File, sheet string, rowNum int, row []any) error {
	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("write row %d: %w", rowNum, err)
		}
	}
	return nil
}
