package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/varoOP/seasonal/internal/app"
)

var exportFormat string

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Add every image listed in a YAML file",
	Long: `Import reads a YAML file of the form

  images:
    - start: 12-20
      end: 12-26
      image_path: christmas_hat.png
      position: top-right
      priority: 1
      description: Christmas Hat

Every entry is validated before anything is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		ids, err := application.Import(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d images\n", len(ids))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write all images as YAML or an iCalendar feed (stdout when FILE is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := app.ParseExportFormat(exportFormat)
		if err != nil {
			return err
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		var w io.Writer = os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer f.Close()
			w = f
		}

		return application.Export(cmd.Context(), w, format)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "output format: yaml or ics")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
