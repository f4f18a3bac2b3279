package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fundamental-metrics lookup: a thin pass-through to the Yahoo quoteSummary
// API. Values are kept as the provider's own formatted strings and printed
// verbatim; nothing here is cached or normalized.

type StockMetrics struct {
	Symbol string       `json:"symbol"`
	Items  []MetricItem `json:"items"`
}

type MetricItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// formattedValue is Yahoo's {raw, fmt} wrapper around a numeric field.
type formattedValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE    formattedValue `json:"trailingPE"`
				DividendYield formattedValue `json:"dividendYield"`
				MarketCap     formattedValue `json:"marketCap"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				TrailingEps formattedValue `json:"trailingEps"`
				PriceToBook formattedValue `json:"priceToBook"`
				BookValue   formattedValue `json:"bookValue"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"quoteSummary"`
}

type MetricsClient struct {
	client  *resty.Client
	baseURL string
}

func NewMetricsClient() *MetricsClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	return &MetricsClient{
		client:  client,
		baseURL: "https://query1.finance.yahoo.com",
	}
}

// GetMetrics fetches fundamental metrics for a Taiwan stock code, trying the
// listed-market ticker first and the OTC ticker second.
func (m *MetricsClient) GetMetrics(stockCode string) (*StockMetrics, error) {
	for _, suffix := range venueSuffixes {
		symbol := stockCode + suffix

		metrics, err := m.fetchSummary(symbol)
		if err != nil {
			log.Printf("Warning: metrics fetch %s failed: %v", symbol, err)
			continue
		}
		if metrics != nil {
			return metrics, nil
		}
	}
	return nil, fmt.Errorf("no metrics available for %s", stockCode)
}

func (m *MetricsClient) fetchSummary(symbol string) (*StockMetrics, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail,defaultKeyStatistics",
		m.baseURL, symbol)

	resp, err := m.client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metrics: %v", err)
	}
	if resp.StatusCode() == 404 {
		return nil, nil
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode(), resp.String())
	}

	var summary quoteSummaryResponse
	if err := json.Unmarshal(resp.Body(), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", summary.QuoteSummary.Error)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, nil
	}

	result := summary.QuoteSummary.Result[0]
	metrics := &StockMetrics{Symbol: symbol}

	add := func(label string, v formattedValue) {
		if v.Fmt != "" {
			metrics.Items = append(metrics.Items, MetricItem{Label: label, Value: v.Fmt})
		}
	}
	add("Trailing P/E", result.SummaryDetail.TrailingPE)
	add("EPS (trailing)", result.DefaultKeyStatistics.TrailingEps)
	add("Price/Book", result.DefaultKeyStatistics.PriceToBook)
	add("Book Value", result.DefaultKeyStatistics.BookValue)
	add("Dividend Yield", result.SummaryDetail.DividendYield)
	add("Market Cap", result.SummaryDetail.MarketCap)

	if len(metrics.Items) == 0 {
		return nil, nil
	}
	return metrics, nil
}
