package expenses

import "time"

type Summary struct {
	Total      float64            `json:"total"`
	Count      int                `json:"count"`
	ByCategory map[string]float64 `json:"by_category"`
	ByMonth    map[string]float64 `json:"by_month"`
}

// Summarize aggregates entries inside the optional [from, to] window.
// Month keys use the YYYY-MM form the dashboard charts expect.
func Summarize(entries []Entry, from, to *time.Time) Summary {
	s := Summary{
		ByCategory: make(map[string]float64),
		ByMonth:    make(map[string]float64),
	}

	for _, e := range entries {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}

		s.Total += e.Amount
		s.Count++
		s.ByCategory[e.Category] += e.Amount
		s.ByMonth[e.Date.Format("2006-01")] += e.Amount
	}
	return s
}
