package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, source quoteSource) *WebServer {
	t.Helper()
	db := newTestDatabase(t)
	fetcher := NewStockFetcher(source, db)
	server, err := NewWebServer(db, fetcher, NewSummaryService(fetcher), nil, false, "")
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	return server
}

func doRequest(ws *WebServer, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	ws.router.ServeHTTP(rec, req)
	return rec
}

func TestGetDailyBarEndpoint(t *testing.T) {
	source := &fakeSource{
		name: "TSMC",
		bars: map[string][]QuoteBar{
			"2330": {quoteBar("2025-09-19", 102, 10000)},
		},
	}
	ws := newTestServer(t, source)

	rec := doRequest(ws, http.MethodGet, "/api/stocks/2330/daily?date=2025-09-19")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Count int        `json:"count"`
		Data  []DailyBar `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if payload.Count != 1 || len(payload.Data) != 1 || payload.Data[0].Close != 102 {
		t.Errorf("unexpected payload: %s", rec.Body.String())
	}
}

func TestInvalidInputRejectedAtBoundary(t *testing.T) {
	source := &fakeSource{}
	ws := newTestServer(t, source)

	cases := []string{
		"/api/stocks/abc/daily",                                  // bad code
		"/api/stocks/2330/daily?date=19-09-2025",                 // bad date
		"/api/stocks/2330/range?start=2025-09-19&end=2025-09-15", // inverted range
		"/api/stocks/2330/range?start=bogus&end=2025-09-19",      // bad start
	}
	for _, target := range cases {
		rec := doRequest(ws, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
	if source.calls != 0 {
		t.Errorf("invalid input must never reach the fetcher, got %d calls", source.calls)
	}
}

func TestWeeklySummaryEndpoint(t *testing.T) {
	source := &fakeSource{
		name: "TSMC",
		bars: map[string][]QuoteBar{
			"2330": {
				quoteBar("2025-09-16", 99, 8000),
				quoteBar("2025-09-18", 101, 9000),
			},
		},
	}
	ws := newTestServer(t, source)

	rec := doRequest(ws, http.MethodGet, "/api/stocks/2330/weekly?date=2025-09-19")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary WeeklySummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(summary.Bars) != 2 {
		t.Errorf("expected 2 bars, got %d", len(summary.Bars))
	}
}

func TestSearchWithoutDirectory(t *testing.T) {
	ws := newTestServer(t, &fakeSource{})

	rec := doRequest(ws, http.MethodGet, "/api/search?q=2330")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a directory, got %d", rec.Code)
	}
}
