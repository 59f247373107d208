package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/budgetbook/budgetbook-backend/internal/repository/storage"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// StatementRow is one occurrence in a month statement
type StatementRow struct {
	Date    string `csv:"date"`
	Name    string `csv:"name"`
	Type    string `csv:"type"`
	Pattern string `csv:"repeat_pattern"`
	Amount  string `csv:"amount"`
}

// StatementLink points at an uploaded statement
type StatementLink struct {
	URL       string    `json:"url"`
	Path      string    `json:"path"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ExportService renders month statements as CSV
type ExportService struct {
	calendarService *CalendarService
	store           storage.ObjectStore
	urlExpiry       time.Duration
}

// NewExportService creates a new ExportService. store may be nil, which disables uploads.
func NewExportService(calendarService *CalendarService, store storage.ObjectStore, urlExpiry time.Duration) *ExportService {
	return &ExportService{
		calendarService: calendarService,
		store:           store,
		urlExpiry:       urlExpiry,
	}
}

// UploadsEnabled reports whether statements can be published to object storage
func (s *ExportService) UploadsEnabled() bool {
	return s.store != nil
}

// MonthStatement renders one CSV row per occurrence in the month
func (s *ExportService) MonthStatement(ctx context.Context, ledgerID int32, month recurrence.Month) ([]byte, error) {
	if !month.Valid() {
		return nil, recurrence.ErrInvalidMonth
	}

	occurrences, err := s.calendarService.Occurrences(ctx, ledgerID, month)
	if err != nil {
		return nil, err
	}

	rows := make([]*StatementRow, 0, len(occurrences))
	for _, o := range occurrences {
		rows = append(rows, &StatementRow{
			Date:    time.Date(month.Year, time.Month(month.Month), o.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Name:    o.Transaction.Name,
			Type:    string(o.Transaction.Type),
			Pattern: string(o.Transaction.RepeatPattern),
			Amount:  o.Amount.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csv.NewWriter(&buf))); err != nil {
		return nil, fmt.Errorf("write statement csv: %w", err)
	}
	return buf.Bytes(), nil
}

// PublishStatement uploads the month statement and returns a time-limited link to it
func (s *ExportService) PublishStatement(ctx context.Context, ledgerID int32, month recurrence.Month) (*StatementLink, error) {
	if s.store == nil {
		return nil, domain.ErrStorageDisabled
	}

	data, err := s.MonthStatement(ctx, ledgerID, month)
	if err != nil {
		return nil, err
	}

	objectPath := storage.StatementObjectPath(ledgerID, month.Year, month.Month)
	objectPath, err = s.store.Upload(ctx, objectPath, bytes.NewReader(data), "text/csv", int64(len(data)))
	if err != nil {
		log.Error().Err(err).Int32("ledger_id", ledgerID).Msg("Failed to upload statement")
		return nil, err
	}

	url, err := s.store.GeneratePresignedURL(ctx, objectPath, s.urlExpiry)
	if err != nil {
		log.Error().Err(err).Str("path", objectPath).Msg("Failed to presign statement URL")
		return nil, err
	}

	log.Info().Int32("ledger_id", ledgerID).Str("month", month.String()).Str("path", objectPath).Msg("Statement published")
	return &StatementLink{
		URL:       url,
		Path:      objectPath,
		ExpiresAt: time.Now().Add(s.urlExpiry).UTC(),
	}, nil
}
