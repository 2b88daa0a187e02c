package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/varoOP/seasonal/internal/app"
	"github.com/varoOP/seasonal/internal/domain"
	"github.com/varoOP/seasonal/internal/seasonal"
)

var activeDate string

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the image active today (or on --date)",
	Long: `Resolve the active image the same way the render hook does: the
enabled image with the highest priority whose window contains the date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		now := application.Clock().Now()
		if activeDate != "" {
			now, err = dateFlag(now, activeDate)
			if err != nil {
				return err
			}
		}

		img, err := application.Service().GetActiveImage(cmd.Context(), now)
		if err != nil {
			return err
		}
		if img == nil {
			fmt.Printf("No active image on %s\n", domain.FormatDate(int(now.Month()), now.Day()))
			return nil
		}

		until := seasonal.ActiveUntil(now, *img)
		fmt.Printf("#%d %s (%s)\n", img.ID, img.ImagePath, img.Position)
		if img.Description != "" {
			fmt.Printf("  %s\n", img.Description)
		}
		fmt.Printf("  window %s → %s, ends %s\n", img.StartDate(), img.EndDate(), humanize.RelTime(until.AddDate(0, 0, 1), now, "ago", "from now"))
		return nil
	},
}

// dateFlag turns an MM-DD flag into noon on that day. Feb 29 falls in the
// next leap year so it is not rolled over to Mar 1.
func dateFlag(now time.Time, s string) (time.Time, error) {
	month, day, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	year := domain.YearFor(now.Year(), month, day)
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, now.Location()), nil
}

func init() {
	activeCmd.Flags().StringVar(&activeDate, "date", "", "date to resolve for, as MM-DD (default today)")
	rootCmd.AddCommand(activeCmd)
}
