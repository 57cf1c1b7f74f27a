package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"hotelier/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const reservationsRange = "Reservations!A:G"

// Service mirrors committed reservations into a Google Sheet so the
// front-desk staff can follow bookings without touching the database.
type Service struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

func NewService(credentialsFile, spreadsheetID string) (*Service, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	srv, err := sheetsapi.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	return &Service{service: srv, spreadsheetID: spreadsheetID}, nil
}

// TestConnection проверяет доступ к таблице
func (s *Service) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, "Reservations!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %v", err)
	}
	return nil
}

// ServiceAccountEmail returns the service account email to share the
// spreadsheet with.
func ServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

// AppendReservation adds one reservation row at the bottom of the sheet.
func (s *Service) AppendReservation(ctx context.Context, detail *models.ReservationDetail) error {
	valueRange := &sheetsapi.ValueRange{
		Values: [][]interface{}{ReservationRow(detail)},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, reservationsRange, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// ReplaceAllReservations clears the sheet and rewrites the full listing.
func (s *Service) ReplaceAllReservations(ctx context.Context, details []models.ReservationDetail) error {
	if _, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, reservationsRange, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("unable to clear sheet: %v", err)
	}

	values := [][]interface{}{ReservationHeader()}
	for i := range details {
		values = append(values, ReservationRow(&details[i]))
	}

	rangeData := fmt.Sprintf("Reservations!A1:G%d", len(values))
	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeData, &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func ReservationHeader() []interface{} {
	return []interface{}{"ID", "Client", "City", "Arrival", "Departure", "Room", "Room Type"}
}

func ReservationRow(detail *models.ReservationDetail) []interface{} {
	return []interface{}{
		detail.ReservationID,
		detail.ClientName,
		detail.City,
		detail.Arrival.Format(models.DateLayout),
		detail.Departure.Format(models.DateLayout),
		detail.RoomNumber,
		detail.RoomType,
	}
}
