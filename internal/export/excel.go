package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Exporter writes reservation reports to Excel files.
type Exporter struct {
	store  domain.Store
	config config.ExportConfig
	logger *zerolog.Logger
}

func NewExporter(store domain.Store, cfg config.ExportConfig, logger *zerolog.Logger) *Exporter {
	return &Exporter{store: store, config: cfg, logger: logger}
}

var reservationHeaders = []string{"ID", "Client", "Ville", "Arrivée", "Départ", "Chambre", "Type"}

// ExportReservations writes the reservations arriving in [startDate, endDate]
// to an xlsx file and returns its path.
func (e *Exporter) ExportReservations(ctx context.Context, startDate, endDate time.Time) (string, error) {
	if err := os.MkdirAll(e.config.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	details, err := e.store.ListReservationsBetween(ctx, startDate, endDate)
	if err != nil {
		return "", fmt.Errorf("error getting reservations: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Réservations"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// Заголовок периода
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Période: %s - %s",
		startDate.Format("02.01.2006"), endDate.Format("02.01.2006")))

	for col, header := range reservationHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	for row, d := range details {
		values := []any{
			d.ReservationID,
			d.ClientName,
			d.City,
			d.Arrival.Format(models.DateLayout),
			d.Departure.Format(models.DateLayout),
			d.RoomNumber,
			d.RoomType,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 10)
	_ = f.SetColWidth(sheetName, "B", "G", 20)

	lastCol, _ := excelize.ColumnNumberToName(len(reservationHeaders))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(sheetName, "A2", lastCol+"2", headerStyle)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("reservations_%s_to_%s.xlsx",
		startDate.Format(models.DateLayout),
		endDate.Format(models.DateLayout))
	filePath := filepath.Join(e.config.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("rows", len(details)).Msg("Excel file created")
	return filePath, nil
}
