package main

import (
	"fmt"
	"time"
)

// SummaryService composes point and range fetches into calendar rollups.
// Rollups probe one day at a time so days already in the cache never cause a
// remote call; the loop is strictly sequential.
type SummaryService struct {
	fetcher *StockFetcher
}

func NewSummaryService(fetcher *StockFetcher) *SummaryService {
	return &SummaryService{fetcher: fetcher}
}

// WeeklySummary covers the 7 calendar days ending at referenceDate inclusive.
// Non-trading days are absent from the result, so a normal week holds 5 bars.
func (s *SummaryService) WeeklySummary(stockCode string, referenceDate time.Time) (*WeeklySummary, error) {
	endDate := day(referenceDate)
	startDate := endDate.AddDate(0, 0, -6)

	bars, err := s.collectDays(stockCode, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &WeeklySummary{
		StockCode: stockCode,
		StartDate: startDate,
		EndDate:   endDate,
		Bars:      bars,
	}, nil
}

// MonthlySummary covers the calendar month before the month containing
// referenceDate: a reference date of 2025-10-01 yields the 2025-09 summary.
func (s *SummaryService) MonthlySummary(stockCode string, referenceDate time.Time) (*MonthlySummary, error) {
	firstOfMonth := time.Date(referenceDate.Year(), referenceDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	endDate := firstOfMonth.AddDate(0, 0, -1)
	startDate := time.Date(endDate.Year(), endDate.Month(), 1, 0, 0, 0, 0, time.UTC)

	bars, err := s.collectDays(stockCode, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &MonthlySummary{
		StockCode: stockCode,
		Month:     startDate.Format("2006-01"),
		Bars:      bars,
	}, nil
}

// RangeReport returns the bars for an arbitrary [startDate, endDate] span,
// delegating to the fetcher's range operation.
func (s *SummaryService) RangeReport(stockCode string, startDate, endDate time.Time) ([]DailyBar, error) {
	return s.fetcher.FetchRange(stockCode, startDate, endDate, false)
}

// collectDays issues one quiet point fetch per calendar day and gathers the
// non-empty results in ascending date order.
func (s *SummaryService) collectDays(stockCode string, startDate, endDate time.Time) ([]DailyBar, error) {
	var bars []DailyBar
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dayBars, err := s.fetcher.FetchPoint(stockCode, d, true)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s for %s: %v", stockCode, d.Format(DateFormat), err)
		}
		bars = append(bars, dayBars...)
	}
	return bars, nil
}
