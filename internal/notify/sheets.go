package notify

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetSink appends [value, timestamp] rows to a Google spreadsheet. If the
// service-account credentials cannot be loaded at startup the sink degrades to
// a no-op for the lifetime of the process rather than failing every iteration.
type SheetSink struct {
	svc           *sheets.Service // nil when startup authentication failed
	spreadsheetID string
}

// NewSheetSink authenticates against the Sheets API with the service-account
// key at credentialsFile. Authentication failure is logged, not returned: the
// resulting sink simply does nothing.
func NewSheetSink(ctx context.Context, credentialsFile, spreadsheetID string, log zerolog.Logger) *SheetSink {
	sink := &SheetSink{spreadsheetID: spreadsheetID}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		log.Error().Err(err).Str("file", credentialsFile).
			Msg("sheet credentials unavailable, sheet sink disabled")
		return sink
	}
	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		log.Error().Err(err).Msg("sheet credentials invalid, sheet sink disabled")
		return sink
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		log.Error().Err(err).Msg("sheets service unavailable, sheet sink disabled")
		return sink
	}

	sink.svc = svc
	return sink
}

func (s *SheetSink) Name() string { return "sheet" }

// Enabled reports whether startup authentication succeeded.
func (s *SheetSink) Enabled() bool { return s.svc != nil }

// Notify appends one row. A disabled sink succeeds without doing anything.
func (s *SheetSink) Notify(ctx context.Context, value float64) error {
	if s.svc == nil {
		return nil
	}
	row := &sheets.ValueRange{
		Values: [][]any{{value, time.Now().Format(time.RFC3339)}},
	}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, "A1", row).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row to sheet %s: %w", s.spreadsheetID, err)
	}
	return nil
}
