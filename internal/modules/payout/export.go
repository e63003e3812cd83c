package payout

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"puretask/internal/repository"
)

const exportSheet = "Payouts"

var exportHeaders = []string{
	"Payout ID", "Cleaner ID", "Type", "Status", "Gross USD", "Fee USD", "Net USD",
	"Bookings", "Batch start", "Batch end", "Created", "Completed", "Failure reason",
}

// ExportPayouts writes the filtered payouts as an XLSX statement.
func (s *Service) ExportPayouts(ctx context.Context, f repository.PayoutFilter, w io.Writer) error {
	payouts, err := s.ListPayouts(ctx, f)
	if err != nil {
		return err
	}

	x := excelize.NewFile()
	defer func() { _ = x.Close() }()

	index, err := x.NewSheet(exportSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	x.SetActiveSheet(index)
	if err := x.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := x.SetCellValue(exportSheet, cell, header); err != nil {
			return err
		}
	}

	row := 2
	for _, p := range payouts {
		completed := ""
		if p.CompletedAt != nil {
			completed = p.CompletedAt.In(s.loc).Format("2006-01-02 15:04")
		}
		values := []interface{}{
			p.ID,
			p.CleanerID,
			string(p.PayoutType),
			p.Display.Label,
			p.GrossUSD.InexactFloat64(),
			p.FeeUSD.InexactFloat64(),
			p.AmountUSD.InexactFloat64(),
			len(p.BookingIDs),
			p.BatchStart.In(s.loc).Format("2006-01-02"),
			p.BatchEnd.In(s.loc).Format("2006-01-02"),
			p.CreatedAt.In(s.loc).Format("2006-01-02 15:04"),
			completed,
			p.FailureReason,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := x.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}

	if err := x.SetColWidth(exportSheet, "A", "B", 38); err != nil {
		return err
	}
	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
