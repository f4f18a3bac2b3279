package main

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the watch list after each Taiwan trading day.
type Scheduler struct {
	fetcher  *StockFetcher
	database *Database
	cron     *cron.Cron
	spec     string
}

// NewScheduler creates a scheduler running on Taipei time, so the cron spec
// is expressed in the market's own clock.
func NewScheduler(fetcher *StockFetcher, database *Database, spec string) (*Scheduler, error) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		fetcher:  fetcher,
		database: database,
		cron:     cron.New(cron.WithLocation(taipei)),
		spec:     spec,
	}, nil
}

func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(s.spec, func() {
		log.Println("[Scheduler] Starting scheduled watch list refresh...")
		s.refreshWatchedStocks()
	})

	if err != nil {
		log.Printf("[Scheduler] Failed to schedule task: %v", err)
		return
	}

	s.cron.Start()
	log.Printf("[Scheduler] Scheduler started - watch list refresh at %q Taipei time", s.spec)
}

// refreshWatchedStocks fetches the trailing week for every watched stock,
// one at a time. A failed stock is logged and skipped, never aborts the run.
func (s *Scheduler) refreshWatchedStocks() {
	stocks, err := s.database.GetWatchedStocks()
	if err != nil {
		log.Printf("[Scheduler] Error getting watched stocks: %v", err)
		return
	}

	if len(stocks) == 0 {
		log.Println("[Scheduler] No watched stocks to refresh")
		return
	}

	log.Printf("[Scheduler] Refreshing %d watched stocks...", len(stocks))

	end := day(time.Now())
	start := end.AddDate(0, 0, -6)

	successCount := 0
	failCount := 0

	for _, stock := range stocks {
		log.Printf("[Scheduler] Refreshing %s (%s)...", stock.Code, stock.Name)

		bars, err := s.fetcher.FetchRange(stock.Code, start, end, true)
		if err != nil {
			log.Printf("[Scheduler] Failed to refresh %s: %v", stock.Code, err)
			failCount++
			continue
		}

		if err := s.database.UpdateLastSync(stock.Code); err != nil {
			log.Printf("[Scheduler] Warning: failed to update last sync time for %s: %v", stock.Code, err)
		}

		log.Printf("[Scheduler] %s: %d bars in window", stock.Code, len(bars))
		successCount++

		// Small delay between requests to avoid rate limiting
		time.Sleep(2 * time.Second)
	}

	log.Printf("[Scheduler] Refresh completed: %d succeeded, %d failed", successCount, failCount)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	log.Println("[Scheduler] Stopping scheduler...")
	s.cron.Stop()
	log.Println("[Scheduler] Scheduler stopped")
}
