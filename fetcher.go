package main

import (
	"fmt"
	"log"
	"time"
)

// quoteSource is the remote side of the read-through cache. An empty result
// means no venue had data; transport failures are absorbed by the
// implementation and also surface as an empty result.
type quoteSource interface {
	FetchDailyBars(stockCode string, start, end time.Time) ([]QuoteBar, string)
}

// StockFetcher is the single entry point for "get me data for a stock,
// fetching if necessary": it checks the database first and falls back to the
// remote source, persisting whatever the remote returns.
type StockFetcher struct {
	source   quoteSource
	database *Database
}

func NewStockFetcher(source quoteSource, database *Database) *StockFetcher {
	return &StockFetcher{
		source:   source,
		database: database,
	}
}

// FetchPoint returns the bar for one stock on one date: from the database
// when cached, otherwise fetched remotely, persisted, and returned. The
// result holds at most one bar and is empty when the date has no data (a
// non-trading day, or an unknown code). quiet suppresses the no-data notice
// for batch loops that probe many days expecting many misses.
func (f *StockFetcher) FetchPoint(stockCode string, date time.Time, quiet bool) ([]DailyBar, error) {
	date = day(date)

	cached, err := f.database.GetDailyBar(stockCode, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check cache for %s: %v", stockCode, err)
	}
	if cached != nil {
		return []DailyBar{*cached}, nil
	}

	raw, name := f.source.FetchDailyBars(stockCode, date, date)
	if len(raw) == 0 {
		if !quiet {
			log.Printf("No data for %s on %s", stockCode, date.Format(DateFormat))
		}
		return nil, nil
	}

	bars := normalizeBars(stockCode, name, raw)
	if err := f.database.UpsertDailyBars(bars); err != nil {
		return nil, fmt.Errorf("failed to persist bars for %s: %v", stockCode, err)
	}

	var result []DailyBar
	for _, bar := range bars {
		if bar.Date.Equal(date) {
			result = append(result, bar)
		}
	}
	return result, nil
}

// FetchRange returns all bars for [startDate, endDate] inclusive, ascending.
// The cache is trusted only when it holds a bar for every calendar day of
// the span; otherwise the whole window is fetched remotely, persisted, and
// the database re-queried so the result reflects the full persisted state.
// An empty remote result degrades to whatever was already cached.
func (f *StockFetcher) FetchRange(stockCode string, startDate, endDate time.Time, quiet bool) ([]DailyBar, error) {
	startDate, endDate = day(startDate), day(endDate)

	cached, err := f.database.GetDailyBarsRange(stockCode, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check cache for %s: %v", stockCode, err)
	}
	if rangeComplete(cached, startDate, endDate) {
		return cached, nil
	}

	raw, name := f.source.FetchDailyBars(stockCode, startDate, endDate)
	if len(raw) == 0 {
		if !quiet {
			log.Printf("No new data for %s between %s and %s, returning %d cached bars",
				stockCode, startDate.Format(DateFormat), endDate.Format(DateFormat), len(cached))
		}
		return cached, nil
	}

	if err := f.database.UpsertDailyBars(normalizeBars(stockCode, name, raw)); err != nil {
		return nil, fmt.Errorf("failed to persist bars for %s: %v", stockCode, err)
	}

	return f.database.GetDailyBarsRange(stockCode, startDate, endDate)
}

// rangeComplete reports whether the cached bars cover every calendar day of
// [startDate, endDate]. Cache completeness is decided by date identity, not
// row count, so a hole on one day cannot be masked by a stray bar elsewhere.
func rangeComplete(bars []DailyBar, startDate, endDate time.Time) bool {
	have := make(map[string]bool, len(bars))
	for _, bar := range bars {
		have[bar.Date.Format(DateFormat)] = true
	}
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if !have[d.Format(DateFormat)] {
			return false
		}
	}
	return true
}

// normalizeBars converts raw venue bars into canonical DailyBars, attaching
// the stock code and resolved display name.
func normalizeBars(stockCode, stockName string, raw []QuoteBar) []DailyBar {
	if stockName == "" {
		stockName = stockCode
	}
	bars := make([]DailyBar, 0, len(raw))
	for _, q := range raw {
		bars = append(bars, DailyBar{
			StockCode: stockCode,
			StockName: stockName,
			Date:      day(q.Date),
			Open:      q.Open,
			High:      q.High,
			Low:       q.Low,
			Close:     q.Close,
			Volume:    q.Volume,
		})
	}
	return bars
}
