package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"bidboard/internal/analytics"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	summaryDays    int
	summaryLimit   int
	summaryRefresh bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Compute (or read from cache) the dashboard summary and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := analytics.NewService(boardClient, feedStore, cacheStore,
			analytics.WithTTL(cfg.SummaryTTL))

		result, err := svc.GetSummary(cmd.Context(), summaryDays, summaryLimit, summaryRefresh)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "%s items, %s activities, computed %s\n",
			humanize.Comma(int64(result.Totals.Items)),
			humanize.Comma(int64(result.Totals.Analyses+result.Totals.Reviews+result.Totals.FOIARequests+result.Totals.ChatSessions)),
			humanize.Time(result.ComputedAt))

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	},
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Drop the cached summary so the next request recomputes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := analytics.NewService(boardClient, feedStore, cacheStore)
		if err := svc.ClearCache(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Summary cache cleared.")
		return nil
	},
}

func init() {
	summaryCmd.Flags().IntVar(&summaryDays, "days", analytics.DefaultVolumeDays, "volume window in days")
	summaryCmd.Flags().IntVar(&summaryLimit, "limit", analytics.DefaultFetchLimit, "max records fetched per activity feed")
	summaryCmd.Flags().BoolVar(&summaryRefresh, "refresh", false, "bypass the cache and recompute")
}
