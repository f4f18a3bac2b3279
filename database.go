package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	db *gorm.DB
}

// NewDatabase opens (or creates) the sqlite file and ensures the schema
// exists. Safe to call on every process start; existing rows are untouched.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Auto migrate tables
	if err := db.AutoMigrate(allModels...); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %v", err)
	}

	return &Database{db: db}, nil
}

// UpsertDailyBars writes bars with insert-or-replace semantics: a bar whose
// (stock_code, date) key already exists silently overwrites the old row.
// All bars of one call land in a single transaction.
func (d *Database) UpsertDailyBars(bars []DailyBar) error {
	if len(bars) == 0 {
		return nil
	}

	records := make([]StockDailyRecord, 0, len(bars))
	for _, bar := range bars {
		records = append(records, recordFromBar(bar))
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			result := tx.Exec(`
				INSERT OR REPLACE INTO daily_quotes
				(stock_code, stock_name, date, open_price, close_price, high_price, low_price, volume)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				rec.StockCode, rec.StockName, rec.Date,
				rec.OpenPrice, rec.ClosePrice, rec.HighPrice, rec.LowPrice, rec.Volume)

			if result.Error != nil {
				return fmt.Errorf("failed to upsert bar %s %s: %v", rec.StockCode, rec.Date, result.Error)
			}
		}
		return nil
	})
}

// GetDailyBar looks up the single bar for a stock on an exact date.
// Returns (nil, nil) when no row exists.
func (d *Database) GetDailyBar(stockCode string, date time.Time) (*DailyBar, error) {
	var rec StockDailyRecord
	result := d.db.Where("stock_code = ? AND date = ?", stockCode, day(date).Format(DateFormat)).
		First(&rec)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query daily bar: %v", result.Error)
	}

	bar, err := barFromRecord(rec)
	if err != nil {
		return nil, err
	}
	return &bar, nil
}

// GetDailyBarsRange returns all bars for a stock in [startDate, endDate]
// inclusive, ascending by date. The result is sparse: it may hold fewer rows
// than the calendar span.
func (d *Database) GetDailyBarsRange(stockCode string, startDate, endDate time.Time) ([]DailyBar, error) {
	var records []StockDailyRecord
	result := d.db.Where("stock_code = ? AND date BETWEEN ? AND ?",
		stockCode, day(startDate).Format(DateFormat), day(endDate).Format(DateFormat)).
		Order("date ASC").
		Find(&records)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to query date range: %v", result.Error)
	}

	var bars []DailyBar
	for _, rec := range records {
		bar, err := barFromRecord(rec)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func recordFromBar(bar DailyBar) StockDailyRecord {
	return StockDailyRecord{
		StockCode:  bar.StockCode,
		StockName:  bar.StockName,
		Date:       day(bar.Date).Format(DateFormat),
		OpenPrice:  bar.Open,
		ClosePrice: bar.Close,
		HighPrice:  bar.High,
		LowPrice:   bar.Low,
		Volume:     bar.Volume,
	}
}

func barFromRecord(rec StockDailyRecord) (DailyBar, error) {
	date, err := parseDay(rec.Date)
	if err != nil {
		return DailyBar{}, fmt.Errorf("failed to parse stored date %q: %v", rec.Date, err)
	}
	return DailyBar{
		StockCode: rec.StockCode,
		StockName: rec.StockName,
		Date:      date,
		Open:      rec.OpenPrice,
		High:      rec.HighPrice,
		Low:       rec.LowPrice,
		Close:     rec.ClosePrice,
		Volume:    rec.Volume,
	}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %v", err)
	}
	return sqlDB.Close()
}

// Watched Stocks operations
func (d *Database) AddWatchedStock(code, name string) error {
	stock := WatchedStock{
		Code:     code,
		Name:     name,
		IsActive: true,
	}

	result := d.db.Where("code = ?", code).FirstOrCreate(&stock)
	if result.Error != nil {
		return fmt.Errorf("failed to add watched stock: %v", result.Error)
	}

	return nil
}

func (d *Database) RemoveWatchedStock(code string) error {
	result := d.db.Where("code = ?", code).Delete(&WatchedStock{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove watched stock: %v", result.Error)
	}
	return nil
}

func (d *Database) GetWatchedStocks() ([]WatchedStock, error) {
	var stocks []WatchedStock
	result := d.db.Where("is_active = ?", true).Order("added_at DESC").Find(&stocks)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query watched stocks: %v", result.Error)
	}

	return stocks, nil
}

func (d *Database) UpdateLastSync(code string) error {
	result := d.db.Model(&WatchedStock{}).
		Where("code = ?", code).
		Update("last_sync", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to update last sync: %v", result.Error)
	}
	return nil
}
