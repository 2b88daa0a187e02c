package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/varoOP/seasonal/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report enabled images with equal priority whose windows share days",
	Long: `When two enabled images of equal priority are both active on a day,
the one with the earlier start date wins. Check lists those pairs so the
tie can be resolved deliberately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		overlaps, err := application.Overlaps(cmd.Context())
		if err != nil {
			return err
		}
		if len(overlaps) == 0 {
			fmt.Println("No overlapping images")
			return nil
		}

		for _, o := range overlaps {
			fmt.Printf("#%d %s and #%d %s share %s %s, first on %s\n",
				o.First.ID, o.First.ImagePath, o.Second.ID, o.Second.ImagePath,
				humanize.Comma(int64(o.SharedDays)), pluralDays(o.SharedDays), o.FirstDay)
		}
		return fmt.Errorf("found %d overlapping pairs", len(overlaps))
	},
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
