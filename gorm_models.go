package main

import (
	"time"
)

// GORM models for the database

// StockDailyRecord is the durable form of a DailyBar. The composite primary
// key (stock_code, date) guarantees at most one row per stock per day; the
// date column holds ISO-8601 text so range queries order lexically.
type StockDailyRecord struct {
	StockCode  string  `gorm:"column:stock_code;primaryKey;not null" json:"stockCode"`
	Date       string  `gorm:"column:date;primaryKey;not null" json:"date"`
	StockName  string  `gorm:"column:stock_name;not null" json:"stockName"`
	OpenPrice  float64 `gorm:"column:open_price;not null" json:"openPrice"`
	ClosePrice float64 `gorm:"column:close_price;not null" json:"closePrice"`
	HighPrice  float64 `gorm:"column:high_price;not null" json:"highPrice"`
	LowPrice   float64 `gorm:"column:low_price;not null" json:"lowPrice"`
	Volume     int64   `gorm:"column:volume;not null" json:"volume"`
}

// TableName specifies the table name for StockDailyRecord
func (StockDailyRecord) TableName() string {
	return "daily_quotes"
}

// WatchedStock represents stocks that are refreshed by the daemon
type WatchedStock struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"uniqueIndex;not null" json:"code"`
	Name      string     `gorm:"" json:"name"`
	AddedAt   time.Time  `gorm:"autoCreateTime" json:"addedAt"`
	LastSync  *time.Time `gorm:"" json:"lastSync"`
	IsActive  bool       `gorm:"default:true;not null" json:"isActive"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for WatchedStock
func (WatchedStock) TableName() string {
	return "watched_stocks"
}

// Get all model types for auto migration
var allModels = []interface{}{
	&StockDailyRecord{},
	&WatchedStock{},
}
