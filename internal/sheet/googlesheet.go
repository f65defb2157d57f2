package sheet

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleStore is a TableStore backed by the Google Sheets API.
type GoogleStore struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewGoogleStore creates a Sheets-backed store using the provided
// authenticated HTTP client. sheetName may be empty, in which case
// ranges address the spreadsheet's first sheet.
func NewGoogleStore(ctx context.Context, httpClient *http.Client, spreadsheetID, sheetName string) (*GoogleStore, error) {
	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleStore{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Read fetches a region. Values are requested unformatted with dates
// rendered as serial numbers, so date cells are distinguishable from
// text without depending on the sheet's display format.
func (s *GoogleStore) Read(ctx context.Context, rangeA1 string) ([][]any, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.rangeRef(rangeA1)).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rangeA1, err)
	}

	return resp.Values, nil
}

// Write replaces a region wholesale. RAW input keeps serial numbers as
// numbers, so date cells written back retain their cell format.
func (s *GoogleStore) Write(ctx context.Context, rangeA1 string, values [][]any) error {
	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, s.rangeRef(rangeA1), &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write range %s: %w", rangeA1, err)
	}

	return nil
}

func (s *GoogleStore) rangeRef(rangeA1 string) string {
	if s.sheetName == "" {
		return rangeA1
	}
	// Sheet names containing quotes must have them doubled inside the
	// quoted reference.
	escaped := strings.ReplaceAll(s.sheetName, "'", "''")
	return fmt.Sprintf("'%s'!%s", escaped, rangeA1)
}
