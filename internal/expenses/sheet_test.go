package expenses

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleCSV = `Date,Category,Description,Amount
2024-03-01,Marketing,Facebook ads,"12,500"
2024-03-05,Supplies,Cleaning kits,₹3200
05/03/2024,Salaries,Field coordinator,45000
not-a-date,Marketing,bad row,100
2024-04-02,supplies,Uniforms,1800
2024-04-10,Transport,Fuel reimbursements,oops
`

func newTestSheet(t *testing.T, csvBody string) (*Sheet, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, csvBody)
	}))
	return NewSheet(srv.URL, zap.NewNop().Sugar()), srv.Close
}

func TestFetchParsesAndSkipsMalformedRows(t *testing.T) {
	sheet, done := newTestSheet(t, sampleCSV)
	defer done()

	entries, err := sheet.Fetch(context.Background())
	require.NoError(t, err)

	// Two malformed rows (bad date, bad amount) are dropped.
	require.Len(t, entries, 4)

	assert.Equal(t, "marketing", entries[0].Category)
	assert.Equal(t, 12500.0, entries[0].Amount)
	assert.Equal(t, 3200.0, entries[1].Amount)

	// Day-first layout parses too.
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), entries[2].Date)
}

func TestFetchRejectsMissingColumns(t *testing.T) {
	sheet, done := newTestSheet(t, "When,What\n2024-01-01,thing\n")
	defer done()

	_, err := sheet.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sheet := NewSheet(srv.URL, zap.NewNop().Sugar())
	_, err := sheet.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http=403")
}

func TestSummarize(t *testing.T) {
	entries := []Entry{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Category: "marketing", Amount: 1000},
		{Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Category: "supplies", Amount: 500},
		{Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Category: "marketing", Amount: 200},
	}

	s := Summarize(entries, nil, nil)
	assert.Equal(t, 1700.0, s.Total)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1200.0, s.ByCategory["marketing"])
	assert.Equal(t, 1500.0, s.ByMonth["2024-03"])
	assert.Equal(t, 200.0, s.ByMonth["2024-04"])
}

func TestSummarizeWindow(t *testing.T) {
	entries := []Entry{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Category: "a", Amount: 100},
		{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Category: "a", Amount: 200},
		{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Category: "a", Amount: 400},
	}

	from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	s := Summarize(entries, &from, &to)
	assert.Equal(t, 200.0, s.Total)
	assert.Equal(t, 1, s.Count)
}
