package main

import (
	"time"
)

// DateFormat is the ISO-8601 day format used everywhere a date crosses a
// boundary: the sqlite date column, CLI flags, and API responses.
const DateFormat = "2006-01-02"

// DailyBar is one day's trading record for a stock. At most one bar exists
// per (stock code, date) pair.
type DailyBar struct {
	StockCode string    `json:"stockCode"`
	StockName string    `json:"stockName"`
	Date      time.Time `json:"date"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// WeeklySummary covers the 7 calendar days ending at EndDate inclusive.
// Bars is sparse: non-trading days are simply absent.
type WeeklySummary struct {
	StockCode string     `json:"stockCode"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	Bars      []DailyBar `json:"bars"`
}

// MonthlySummary covers one calendar month, identified as "YYYY-MM".
type MonthlySummary struct {
	StockCode string     `json:"stockCode"`
	Month     string     `json:"month"`
	Bars      []DailyBar `json:"bars"`
}

type AddStockRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name,omitempty"`
}

type SyncResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RecordsAdded int    `json:"recordsAdded"`
}

type StockSearchResult struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// day truncates t to day granularity at midnight UTC so date comparisons
// never depend on the wall-clock time a bar was parsed at.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDay(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
