package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/mastery"
	"github.com/abhisek/smartquiz/internal/qcache"
	"github.com/abhisek/smartquiz/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-topic mastery and cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		pPath, err := profilePath(cmd)
		if err != nil {
			return err
		}
		tracker, err := mastery.Open(pPath)
		if err != nil {
			return fmt.Errorf("open learner profile: %w", err)
		}

		topics := tracker.Topics()
		if len(topics) == 0 {
			fmt.Println("No answers recorded yet. Play a quiz first.")
		} else {
			fmt.Println("Mastery by Topic")
			fmt.Println(strings.Repeat("─", 72))
			for _, topic := range topics {
				score := tracker.ScoreFor(topic)
				pct := tracker.Percent(topic)
				bar := components.ProgressBar{
					Percent:     pct / 100,
					ShowPercent: true,
					Width:       34,
				}
				fmt.Printf("%-28s %s  %3d/%-3d  %s\n",
					truncate(topic, 28), bar.View(), score.Correct, score.Total, tracker.TierFor(topic))
			}
		}

		cPath, err := cachePath(cmd)
		if err != nil {
			return err
		}
		cache, err := qcache.Open(cPath)
		if err != nil {
			return fmt.Errorf("open question cache: %w", err)
		}
		stats := cache.Summary()

		fmt.Println()
		fmt.Println("Question Cache")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("Cached questions:  %d\n", stats.TotalCached)
		fmt.Printf("Topics covered:    %d\n", stats.UniqueTopics)

		return nil
	},
}
