package main

import (
	"testing"
)

func newTestSummaryService(t *testing.T, source quoteSource) (*SummaryService, *Database) {
	t.Helper()
	db := newTestDatabase(t)
	fetcher := NewStockFetcher(source, db)
	return NewSummaryService(fetcher), db
}

func TestWeeklySummarySparse(t *testing.T) {
	// Only 2 of the 7 window days have data.
	source := &fakeSource{
		name: "TSMC",
		bars: map[string][]QuoteBar{
			"2330": {
				quoteBar("2025-09-18", 101, 9000),
				quoteBar("2025-09-16", 99, 8000),
			},
		},
	}
	summaries, _ := newTestSummaryService(t, source)

	summary, err := summaries.WeeklySummary("2330", mustDay("2025-09-19"))
	if err != nil {
		t.Fatalf("weekly summary failed: %v", err)
	}

	if summary.StartDate.Format(DateFormat) != "2025-09-13" {
		t.Errorf("expected window start 2025-09-13, got %s", summary.StartDate.Format(DateFormat))
	}
	if summary.EndDate.Format(DateFormat) != "2025-09-19" {
		t.Errorf("expected window end 2025-09-19, got %s", summary.EndDate.Format(DateFormat))
	}
	if len(summary.Bars) != 2 {
		t.Fatalf("expected exactly 2 bars for a 2-trading-day week, got %d", len(summary.Bars))
	}
	if !summary.Bars[0].Date.Before(summary.Bars[1].Date) {
		t.Error("bars not in ascending date order")
	}
	if summary.Bars[0].Close != 99 || summary.Bars[1].Close != 101 {
		t.Errorf("unexpected bar values: %+v", summary.Bars)
	}
}

func TestWeeklySummaryHitsCachePerDay(t *testing.T) {
	source := &fakeSource{
		name: "TSMC",
		bars: map[string][]QuoteBar{
			"2330": {quoteBar("2025-09-18", 101, 9000)},
		},
	}
	summaries, db := newTestSummaryService(t, source)

	// Pre-cache one window day; the loop must not re-fetch it.
	if err := db.UpsertDailyBars([]DailyBar{testBar("2330", "2025-09-16", 99)}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	summary, err := summaries.WeeklySummary("2330", mustDay("2025-09-19"))
	if err != nil {
		t.Fatalf("weekly summary failed: %v", err)
	}
	if len(summary.Bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(summary.Bars))
	}
	// 7 window days, 1 cached: 6 remote probes.
	if source.calls != 6 {
		t.Errorf("expected 6 remote probes, got %d", source.calls)
	}
}

func TestMonthlySummaryBoundary(t *testing.T) {
	source := &fakeSource{
		name: "TSMC",
		bars: map[string][]QuoteBar{
			"2330": {
				quoteBar("2025-09-01", 95, 7000),
				quoteBar("2025-09-30", 102, 9000),
				// Outside the September window: must not appear.
				quoteBar("2025-08-31", 94, 6000),
				quoteBar("2025-10-01", 103, 9500),
			},
		},
	}
	summaries, _ := newTestSummaryService(t, source)

	// A reference date of October 1 produces the September summary.
	summary, err := summaries.MonthlySummary("2330", mustDay("2025-10-01"))
	if err != nil {
		t.Fatalf("monthly summary failed: %v", err)
	}

	if summary.Month != "2025-09" {
		t.Errorf("expected month label 2025-09, got %s", summary.Month)
	}
	if len(summary.Bars) != 2 {
		t.Fatalf("expected the 2 September bars, got %d", len(summary.Bars))
	}
	if summary.Bars[0].Date.Format(DateFormat) != "2025-09-01" {
		t.Errorf("expected first bar on 2025-09-01, got %s", summary.Bars[0].Date.Format(DateFormat))
	}
	if summary.Bars[1].Date.Format(DateFormat) != "2025-09-30" {
		t.Errorf("expected last bar on 2025-09-30, got %s", summary.Bars[1].Date.Format(DateFormat))
	}
	// One probe per September day.
	if source.calls != 30 {
		t.Errorf("expected 30 remote probes for September, got %d", source.calls)
	}
}

func TestMonthlySummaryYearBoundary(t *testing.T) {
	source := &fakeSource{
		name: "TSMC",
		bars: map[string][]QuoteBar{
			"2330": {quoteBar("2025-12-31", 110, 9000)},
		},
	}
	summaries, _ := newTestSummaryService(t, source)

	summary, err := summaries.MonthlySummary("2330", mustDay("2026-01-15"))
	if err != nil {
		t.Fatalf("monthly summary failed: %v", err)
	}
	if summary.Month != "2025-12" {
		t.Errorf("expected month label 2025-12, got %s", summary.Month)
	}
	if len(summary.Bars) != 1 {
		t.Errorf("expected 1 bar, got %d", len(summary.Bars))
	}
}

func TestRangeReportDelegates(t *testing.T) {
	source := &fakeSource{
		name: "TSMC",
		bars: map[string][]QuoteBar{
			"2330": {
				quoteBar("2025-09-17", 100, 8000),
				quoteBar("2025-09-18", 101, 9000),
			},
		},
	}
	summaries, db := newTestSummaryService(t, source)

	bars, err := summaries.RangeReport("2330", mustDay("2025-09-15"), mustDay("2025-09-19"))
	if err != nil {
		t.Fatalf("range report failed: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}

	// The report reflects persisted state.
	stored, err := db.GetDailyBarsRange("2330", mustDay("2025-09-15"), mustDay("2025-09-19"))
	if err != nil {
		t.Fatalf("range query failed: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected 2 persisted rows, got %d", len(stored))
	}
}
