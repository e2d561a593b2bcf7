package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/mastery"
	"github.com/abhisek/smartquiz/internal/qcache"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the question cache and/or learner profile",
	Long:  "Erase durable state. With no selection flags, both the question cache and the learner profile are cleared. This cannot be undone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		clearCache, _ := cmd.Flags().GetBool("cache")
		clearProfile, _ := cmd.Flags().GetBool("profile")
		yes, _ := cmd.Flags().GetBool("yes")

		// No selection means everything.
		if !clearCache && !clearProfile {
			clearCache = true
			clearProfile = true
		}

		var targets []string
		if clearCache {
			targets = append(targets, "question cache")
		}
		if clearProfile {
			targets = append(targets, "learner profile")
		}

		if !yes {
			fmt.Printf("This will erase the %s. Continue? [y/N] ", strings.Join(targets, " and "))
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if clearCache {
			path, err := cachePath(cmd)
			if err != nil {
				return err
			}
			cache, err := qcache.Open(path)
			if err != nil {
				return fmt.Errorf("open question cache: %w", err)
			}
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear question cache: %w", err)
			}
			fmt.Println("Question cache cleared.")
		}

		if clearProfile {
			path, err := profilePath(cmd)
			if err != nil {
				return err
			}
			tracker, err := mastery.Open(path)
			if err != nil {
				return fmt.Errorf("open learner profile: %w", err)
			}
			if err := tracker.Reset(); err != nil {
				return fmt.Errorf("reset learner profile: %w", err)
			}
			fmt.Println("Learner profile reset.")
		}

		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("cache", false, "Erase only the question cache")
	resetCmd.Flags().Bool("profile", false, "Erase only the learner profile")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
