package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/seasonal/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the active image and the admin API over HTTP",
	Long: `Serve starts the HTTP server:
  GET    /api/active              active overlay for today (render hook)
  GET    /api/images              all configured images
  GET    /api/images/:id          one image
  POST   /api/images              add an image
  PUT    /api/images/:id          update fields of an image
  DELETE /api/images/:id          delete an image
  POST   /api/images/:id/toggle   enable or disable an image
  GET    /calendar.ics            configured windows as a yearly calendar
  GET    /healthz                 store health

Write endpoints require "Authorization: Bearer <admin_token>" when
admin_token is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := application.Serve(ctx); err != nil {
			return fmt.Errorf("serve failed: %w", err)
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().String("listen-addr", ":8080", "address to listen on")
	serveCmd.Flags().String("image-base-url", "/images/", "URL prefix joined with each image path")
	serveCmd.Flags().Duration("cache-ttl", time.Hour, "how long a resolved active image is cached")

	viper.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen-addr"))
	viper.BindPFlag("image_base_url", serveCmd.Flags().Lookup("image-base-url"))
	viper.BindPFlag("cache_ttl", serveCmd.Flags().Lookup("cache-ttl"))

	rootCmd.AddCommand(serveCmd)
}
