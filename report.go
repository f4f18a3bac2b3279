package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Console rendering of bars and summaries. The core guarantees field names
// and types; column order here is presentation only.

func printBars(w io.Writer, bars []DailyBar) {
	if len(bars) == 0 {
		fmt.Fprintln(w, "No data found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tDATE\tOPEN\tHIGH\tLOW\tCLOSE\tVOLUME")
	for _, bar := range bars {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%d\n",
			bar.StockCode, bar.StockName, bar.Date.Format(DateFormat),
			bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}
	tw.Flush()
}

func printWeeklySummary(w io.Writer, summary *WeeklySummary) {
	fmt.Fprintf(w, "--- Weekly summary for %s (%s to %s) ---\n",
		summary.StockCode,
		summary.StartDate.Format(DateFormat),
		summary.EndDate.Format(DateFormat))
	printBars(w, summary.Bars)
}

func printMonthlySummary(w io.Writer, summary *MonthlySummary) {
	fmt.Fprintf(w, "--- Monthly summary for %s (%s) ---\n", summary.StockCode, summary.Month)
	printBars(w, summary.Bars)
}

func printRangeReport(w io.Writer, stockCode string, bars []DailyBar, startDate, endDate string) {
	fmt.Fprintf(w, "--- Transaction data for %s from %s to %s ---\n", stockCode, startDate, endDate)
	printBars(w, bars)
}

func printMetrics(w io.Writer, metrics *StockMetrics) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Symbol\t%s\n", metrics.Symbol)
	for _, item := range metrics.Items {
		fmt.Fprintf(tw, "%s\t%s\n", item.Label, item.Value)
	}
	tw.Flush()
}
