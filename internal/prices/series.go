package prices

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/rpgo/dca-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Column names of the price file header.
const (
	MonthColumn   = "Month"
	ClosingColumn = "Closing"
)

var (
	// ErrNoData reports a price file without a single usable row.
	ErrNoData = errors.New("no valid price observations")
	// ErrOutOfOrder reports observations that are not ascending by date.
	ErrOutOfOrder = errors.New("price observations out of order")
	// ErrNotLoaded reports access to a series before Load succeeded.
	ErrNotLoaded = errors.New("price data not loaded")
)

// LoadFile reads observations from a Month,Closing CSV file
func LoadFile(path string) ([]domain.PriceObservation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	observations, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return observations, nil
}

// Parse reads a Month,Closing CSV stream. Month is dd/mm/yyyy. Rows with an
// empty month or close are skipped; any other malformed row is an error.
// Observations must ascend by date.
func Parse(r io.Reader) ([]domain.PriceObservation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	monthIdx, closeIdx, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var observations []domain.PriceObservation
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		month := field(record, monthIdx)
		closing := field(record, closeIdx)
		if month == "" || closing == "" {
			continue
		}

		date, err := dateutil.ParseDayMonthYear(month)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		value, err := decimal.NewFromString(closing)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid closing price %q: %w", line, closing, err)
		}
		if !value.IsPositive() {
			return nil, fmt.Errorf("row %d: closing price must be positive, got %s", line, closing)
		}
		if n := len(observations); n > 0 && date.Before(observations[n-1].Date) {
			return nil, fmt.Errorf("%w: row %d (%s) precedes %s", ErrOutOfOrder, line, month,
				dateutil.FormatDayMonthYear(observations[n-1].Date))
		}

		observations = append(observations, domain.PriceObservation{Date: date, Close: value})
	}

	if len(observations) == 0 {
		return nil, ErrNoData
	}
	return observations, nil
}

func columnIndexes(header []string) (int, int, error) {
	monthIdx, closeIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, MonthColumn):
			monthIdx = i
		case strings.EqualFold(name, ClosingColumn):
			closeIdx = i
		}
	}
	if monthIdx < 0 || closeIdx < 0 {
		return 0, 0, fmt.Errorf("invalid CSV header %v: expected %s and %s columns", header, MonthColumn, ClosingColumn)
	}
	return monthIdx, closeIdx, nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// AppendObservation adds obs to the end of the price file unless a row with
// the same date already exists. It reports whether a row was written.
// A missing file is created with a header.
func AppendObservation(path string, obs domain.PriceObservation) (bool, error) {
	if !obs.Close.IsPositive() {
		return false, fmt.Errorf("closing price must be positive, got %s", obs.Close.String())
	}

	existing, err := LoadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist), errors.Is(err, ErrNoData):
		existing = nil
	default:
		return false, err
	}

	for _, o := range existing {
		if o.Date.Equal(obs.Date) {
			return false, nil
		}
	}
	if n := len(existing); n > 0 && obs.Date.Before(existing[n-1].Date) {
		return false, fmt.Errorf("%w: %s precedes last observation %s", ErrOutOfOrder,
			dateutil.FormatDayMonthYear(obs.Date), dateutil.FormatDayMonthYear(existing[n-1].Date))
	}

	info, statErr := os.Stat(path)
	writeHeader := statErr != nil || info.Size() == 0

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	if !writeHeader {
		if err := ensureTrailingNewline(path, info.Size()); err != nil {
			return false, err
		}
	}

	w := csv.NewWriter(file)
	if writeHeader {
		if err := w.Write([]string{MonthColumn, ClosingColumn}); err != nil {
			return false, err
		}
	}
	if err := w.Write([]string{dateutil.FormatDayMonthYear(obs.Date), obs.Close.StringFixed(2)}); err != nil {
		return false, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, err
	}
	return true, nil
}

// ensureTrailingNewline terminates a final row that lacks a line break.
func ensureTrailingNewline(path string, size int64) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.WriteAt([]byte{'\n'}, size)
	return err
}
