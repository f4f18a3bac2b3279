package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// StockDirectory is a local lookup table of Taiwan stock codes to display
// names, loaded from a CSV file with rows of "code,name,market" (market is
// "twse" or "tpex"). It is optional: when the file is absent the tool still
// works, with display names resolved remotely instead.
type StockDirectory struct {
	stocks []StockSearchResult
	byCode map[string]StockSearchResult
}

func NewStockDirectory(csvPath string) (*StockDirectory, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	dir := &StockDirectory{byCode: make(map[string]StockSearchResult)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %v", err)
		}
		if len(record) < 2 {
			continue
		}

		stock := StockSearchResult{
			Code: strings.TrimSpace(record[0]),
			Name: strings.TrimSpace(record[1]),
		}
		if len(record) >= 3 {
			stock.Market = strings.ToLower(strings.TrimSpace(record[2]))
		}
		if stock.Code == "" {
			continue
		}

		dir.stocks = append(dir.stocks, stock)
		dir.byCode[stock.Code] = stock
	}

	return dir, nil
}

// Lookup returns the display name for a code, or "" when unknown.
func (d *StockDirectory) Lookup(code string) string {
	if stock, ok := d.byCode[code]; ok {
		return stock.Name
	}
	return ""
}

// Names returns the full code-to-name map, used to seed the remote client's
// name cache at startup.
func (d *StockDirectory) Names() map[string]string {
	names := make(map[string]string, len(d.byCode))
	for code, stock := range d.byCode {
		names[code] = stock.Name
	}
	return names
}

// Search returns up to limit entries whose code or name contains the query,
// case-insensitively. An exact code match always sorts first.
func (d *StockDirectory) Search(query string, limit int) []StockSearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []StockSearchResult
	if stock, ok := d.byCode[query]; ok {
		results = append(results, stock)
	}

	for _, stock := range d.stocks {
		if len(results) >= limit {
			break
		}
		if stock.Code == query {
			continue // already first
		}
		if strings.Contains(strings.ToLower(stock.Code), query) ||
			strings.Contains(strings.ToLower(stock.Name), query) {
			results = append(results, stock)
		}
	}

	return results
}
