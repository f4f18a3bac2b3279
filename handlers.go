package main

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Taiwan stock codes are 4 to 6 digits, optionally with a letter suffix
// (ETFs like 00632R).
var stockCodePattern = regexp.MustCompile(`^[0-9]{4,6}[A-Z]?$`)

func isValidStockCode(code string) bool {
	return stockCodePattern.MatchString(code)
}

// queryDate reads an ISO date query parameter, defaulting to today. Date
// validation happens here, at the presentation boundary: the core assumes
// well-formed dates.
func queryDate(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return day(time.Now()), true
	}
	d, err := parseDay(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + raw})
		return time.Time{}, false
	}
	return d, true
}

func pathCode(c *gin.Context) (string, bool) {
	code := strings.ToUpper(c.Param("code"))
	if !isValidStockCode(code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock code"})
		return "", false
	}
	return code, true
}

func (ws *WebServer) searchStocks(c *gin.Context) {
	if ws.directory == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stock directory not loaded"})
		return
	}
	results := ws.directory.Search(c.Query("q"), 20)
	c.JSON(http.StatusOK, results)
}

func (ws *WebServer) getWatchedStocks(c *gin.Context) {
	stocks, err := ws.database.GetWatchedStocks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stocks)
}

func (ws *WebServer) addWatchedStock(c *gin.Context) {
	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := strings.ToUpper(req.Code)
	if !isValidStockCode(code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock code"})
		return
	}

	name := req.Name
	if name == "" && ws.directory != nil {
		name = ws.directory.Lookup(code)
	}

	if err := ws.database.AddWatchedStock(code, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock added successfully",
		"code":    code,
	})
}

func (ws *WebServer) removeWatchedStock(c *gin.Context) {
	code, ok := pathCode(c)
	if !ok {
		return
	}

	if err := ws.database.RemoveWatchedStock(code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock removed successfully"})
}

func (ws *WebServer) syncStockData(c *gin.Context) {
	code, ok := pathCode(c)
	if !ok {
		return
	}

	// Refresh the trailing week so a late-added stock backfills quickly.
	end := day(time.Now())
	bars, err := ws.fetcher.FetchRange(code, end.AddDate(0, 0, -6), end, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := ws.database.UpdateLastSync(code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SyncResponse{
		Success:      true,
		Message:      "Sync completed",
		RecordsAdded: len(bars),
	})
}

func (ws *WebServer) getDailyBar(c *gin.Context) {
	code, ok := pathCode(c)
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	bars, err := ws.fetcher.FetchPoint(code, date, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":  code,
		"date":  date.Format(DateFormat),
		"count": len(bars),
		"data":  bars,
	})
}

func (ws *WebServer) getWeeklySummary(c *gin.Context) {
	code, ok := pathCode(c)
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	summary, err := ws.summaries.WeeklySummary(code, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ws *WebServer) getMonthlySummary(c *gin.Context) {
	code, ok := pathCode(c)
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	summary, err := ws.summaries.MonthlySummary(code, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ws *WebServer) getRangeReport(c *gin.Context) {
	code, ok := pathCode(c)
	if !ok {
		return
	}

	startRaw, endRaw := c.Query("start"), c.Query("end")
	start, err := parseDay(startRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date: " + startRaw})
		return
	}
	end, err := parseDay(endRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date: " + endRaw})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date before start date"})
		return
	}

	bars, err := ws.summaries.RangeReport(code, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":  code,
		"start": start.Format(DateFormat),
		"end":   end.Format(DateFormat),
		"count": len(bars),
		"data":  bars,
	})
}

func (ws *WebServer) getStockMetrics(c *gin.Context) {
	code, ok := pathCode(c)
	if !ok {
		return
	}

	metrics, err := ws.metrics.GetMetrics(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, metrics)
}
