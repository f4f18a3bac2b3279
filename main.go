package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"
)

func main() {
	// Command line flags
	mode := flag.String("mode", "cli", "Run mode: cli, web, daemon")
	configPath := flag.String("config", "config.yaml", "Config file path")
	stocks := flag.String("stocks", "", `Comma-separated stock codes (e.g. "2330,2317")`)
	dateStr := flag.String("date", "", "Reference date YYYY-MM-DD (default: today)")
	weekly := flag.Bool("weekly", false, "Weekly summary: 7 calendar days ending at the reference date")
	monthly := flag.Bool("monthly", false, "Monthly summary: the calendar month before the reference date")
	startStr := flag.String("start", "", "Range start date YYYY-MM-DD")
	endStr := flag.String("end", "", "Range end date YYYY-MM-DD")
	metrics := flag.Bool("metrics", false, "Show fundamental metrics instead of price data")
	search := flag.String("search", "", "Search the local stock directory and exit")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch *mode {
	case "cli":
		runCLIMode(cfg, *stocks, *dateStr, *weekly, *monthly, *startStr, *endStr, *metrics, *search)
	case "web":
		runWebMode(cfg)
	case "daemon":
		runDaemonMode(cfg)
	default:
		log.Fatalf("Unknown mode: %s. Available modes: cli, web, daemon", *mode)
	}
}

// openServices wires the database, directory, remote client, fetcher, and
// summary service together.
func openServices(cfg *Config) (*Database, *StockFetcher, *SummaryService, *StockDirectory) {
	database, err := NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var directory *StockDirectory
	if dir, err := NewStockDirectory(cfg.Directory.CSVPath); err == nil {
		directory = dir
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: stock directory unavailable: %v", err)
	}

	client := NewYahooFinanceClient()
	if directory != nil {
		client.SeedNames(directory.Names())
	}

	fetcher := NewStockFetcher(client, database)
	return database, fetcher, NewSummaryService(fetcher), directory
}

func runCLIMode(cfg *Config, stocks, dateStr string, weekly, monthly bool, startStr, endStr string, metrics bool, search string) {
	database, fetcher, summaries, directory := openServices(cfg)
	defer database.Close()

	if search != "" {
		if directory == nil {
			log.Fatalf("Stock directory %s not available", cfg.Directory.CSVPath)
		}
		for _, r := range directory.Search(search, 20) {
			log.Printf("%s  %s  %s", r.Code, r.Name, r.Market)
		}
		return
	}

	codes := parseStockCodes(stocks)
	if len(codes) == 0 {
		log.Fatalf("No stock codes given. Use -stocks \"2330,2317\"")
	}

	// All date validation happens here; the services assume well-formed
	// dates with start <= end.
	refDate := day(time.Now())
	if dateStr != "" {
		d, err := parseDay(dateStr)
		if err != nil {
			log.Fatalf("Invalid date %q: want YYYY-MM-DD", dateStr)
		}
		refDate = d
	}

	switch {
	case metrics:
		client := NewMetricsClient()
		for _, code := range codes {
			m, err := client.GetMetrics(code)
			if err != nil {
				log.Printf("Warning: %v", err)
				continue
			}
			printMetrics(os.Stdout, m)
		}

	case weekly:
		for _, code := range codes {
			summary, err := summaries.WeeklySummary(code, refDate)
			if err != nil {
				log.Fatalf("Failed to build weekly summary for %s: %v", code, err)
			}
			printWeeklySummary(os.Stdout, summary)
		}

	case monthly:
		for _, code := range codes {
			summary, err := summaries.MonthlySummary(code, refDate)
			if err != nil {
				log.Fatalf("Failed to build monthly summary for %s: %v", code, err)
			}
			printMonthlySummary(os.Stdout, summary)
		}

	case startStr != "" || endStr != "":
		start, err := parseDay(startStr)
		if err != nil {
			log.Fatalf("Invalid start date %q: want YYYY-MM-DD", startStr)
		}
		end, err := parseDay(endStr)
		if err != nil {
			log.Fatalf("Invalid end date %q: want YYYY-MM-DD", endStr)
		}
		if end.Before(start) {
			log.Fatalf("End date %s is before start date %s", endStr, startStr)
		}
		for _, code := range codes {
			bars, err := summaries.RangeReport(code, start, end)
			if err != nil {
				log.Fatalf("Failed to fetch range for %s: %v", code, err)
			}
			printRangeReport(os.Stdout, code, bars, startStr, endStr)
		}

	default:
		// Daily snapshot across all requested stocks.
		var all []DailyBar
		for _, code := range codes {
			bars, err := fetcher.FetchPoint(code, refDate, false)
			if err != nil {
				log.Fatalf("Failed to fetch %s: %v", code, err)
			}
			all = append(all, bars...)
		}
		log.Printf("--- Daily transaction data for %s ---", refDate.Format(DateFormat))
		printBars(os.Stdout, all)
	}
}

func runWebMode(cfg *Config) {
	log.Println("=== Taiwan Stock Data Server ===")
	log.Printf("Database: %s", cfg.Database.Path)
	log.Printf("Server will start on http://localhost:%s", cfg.Web.Port)

	database, fetcher, summaries, directory := openServices(cfg)
	defer database.Close()

	server, err := NewWebServer(database, fetcher, summaries, directory, true, cfg.Schedule.SyncCron)
	if err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}
	defer server.Close()

	if err := server.Run(":" + cfg.Web.Port); err != nil {
		log.Fatalf("Failed to start web server: %v", err)
	}
}

func runDaemonMode(cfg *Config) {
	log.Println("=== Taiwan Stock Data Daemon ===")
	log.Printf("Database: %s", cfg.Database.Path)

	database, fetcher, _, _ := openServices(cfg)
	defer database.Close()

	scheduler, err := NewScheduler(fetcher, database, cfg.Schedule.SyncCron)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	select {}
}

func parseStockCodes(stocks string) []string {
	var codes []string
	for _, part := range strings.Split(stocks, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		if !isValidStockCode(code) {
			log.Fatalf("Invalid stock code %q", code)
		}
		codes = append(codes, code)
	}
	return codes
}
