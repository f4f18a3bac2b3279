package main

import (
	"log"

	"github.com/gin-gonic/gin"
)

type WebServer struct {
	database  *Database
	fetcher   *StockFetcher
	summaries *SummaryService
	metrics   *MetricsClient
	directory *StockDirectory
	scheduler *Scheduler
	router    *gin.Engine
}

func NewWebServer(database *Database, fetcher *StockFetcher, summaries *SummaryService, directory *StockDirectory, enableScheduler bool, syncCron string) (*WebServer, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	server := &WebServer{
		database:  database,
		fetcher:   fetcher,
		summaries: summaries,
		metrics:   NewMetricsClient(),
		directory: directory,
		router:    router,
	}

	if enableScheduler {
		scheduler, err := NewScheduler(fetcher, database, syncCron)
		if err != nil {
			log.Printf("Warning: Failed to initialize scheduler: %v", err)
		} else {
			server.scheduler = scheduler
			scheduler.Start()
		}
	}

	server.setupRoutes()
	return server, nil
}

func (ws *WebServer) setupRoutes() {
	api := ws.router.Group("/api")
	{
		// Stock search (local directory)
		api.GET("/search", ws.searchStocks)

		// Watch list management
		api.GET("/stocks", ws.getWatchedStocks)
		api.POST("/stocks", ws.addWatchedStock)
		api.DELETE("/stocks/:code", ws.removeWatchedStock)
		api.POST("/stocks/:code/sync", ws.syncStockData)

		// Reports
		api.GET("/stocks/:code/daily", ws.getDailyBar)
		api.GET("/stocks/:code/weekly", ws.getWeeklySummary)
		api.GET("/stocks/:code/monthly", ws.getMonthlySummary)
		api.GET("/stocks/:code/range", ws.getRangeReport)
		api.GET("/stocks/:code/metrics", ws.getStockMetrics)
	}
}

func (ws *WebServer) Run(addr string) error {
	log.Printf("Web server starting on %s", addr)
	return ws.router.Run(addr)
}

func (ws *WebServer) Close() {
	if ws.scheduler != nil {
		ws.scheduler.Stop()
	}
}
