package expenses

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Entry is one row of the published expense sheet.
type Entry struct {
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

// Sheet fetches the ops team's expense spreadsheet, published as CSV at a
// fixed URL. The sheet is hand-maintained, so malformed rows are expected
// and skipped rather than failing the whole fetch.
type Sheet struct {
	url        string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewSheet(url string, logger *zap.SugaredLogger) *Sheet {
	return &Sheet{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

func (s *Sheet) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("expense sheet request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("expense sheet fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("expense sheet fetch failed: http=%d", resp.StatusCode)
	}

	return s.parse(resp.Body)
}

func (s *Sheet) parse(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // hand-edited sheets have ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("expense sheet header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "category", "amount"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("expense sheet missing %q column", required)
		}
	}

	var entries []Entry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warnw("skipping unreadable expense row", "line", line, "error", err)
			continue
		}

		entry, err := parseRow(record, cols)
		if err != nil {
			s.logger.Warnw("skipping malformed expense row", "line", line, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseRow(record []string, cols map[string]int) (Entry, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := parseDate(field("date"))
	if err != nil {
		return Entry{}, err
	}

	amount, err := parseAmount(field("amount"))
	if err != nil {
		return Entry{}, err
	}

	category := field("category")
	if category == "" {
		category = "uncategorized"
	}

	return Entry{
		Date:        date,
		Category:    strings.ToLower(category),
		Description: field("description"),
		Amount:      amount,
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func parseAmount(raw string) (float64, error) {
	// The sheet sometimes carries currency symbols and thousands separators.
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", raw)
	}
	return amount, nil
}
