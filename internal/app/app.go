package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/varoOP/seasonal/internal/calendar"
	"github.com/varoOP/seasonal/internal/config"
	"github.com/varoOP/seasonal/internal/database"
	"github.com/varoOP/seasonal/internal/domain"
	"github.com/varoOP/seasonal/internal/logger"
	"github.com/varoOP/seasonal/internal/notification"
	"github.com/varoOP/seasonal/internal/repository"
	"github.com/varoOP/seasonal/internal/seasonal"
	"github.com/varoOP/seasonal/internal/server"
)

// App represents the main application with all dependencies initialized
type App struct {
	log      zerolog.Logger
	config   *domain.Config
	clock    domain.Clock
	db       *database.DB
	service  seasonal.Service
	fileRepo *repository.FileRepository
}

// NewApp loads configuration and opens the record store
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewAppWithConfig(cfg, nil)
}

// NewAppWithConfig wires the application from an already loaded config.
// A nil clock uses the system clock in the configured timezone.
func NewAppWithConfig(cfg *domain.Config, clock domain.Clock) (*App, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log := logger.NewLoggerWithLevel(level)

	if clock == nil {
		clock = domain.SystemClock{Location: cfg.Location}
	}

	if err := os.MkdirAll(cfg.DatabaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := database.NewDB(cfg.DatabaseDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := database.NewImageRepo(log, db)
	cache := seasonal.NewActiveCache(cfg.CacheTTL)
	notificationService := notification.NewService(log, cfg.DiscordWebhookURL)
	service := seasonal.NewService(log, repo, cache, cfg.Location, notificationService)

	return &App{
		log:      log,
		config:   cfg,
		clock:    clock,
		db:       db,
		service:  service,
		fileRepo: repository.NewFileRepository(log),
	}, nil
}

// Close releases the record store
func (a *App) Close() error {
	return a.db.Close()
}

// Service exposes the resolver and write path
func (a *App) Service() seasonal.Service {
	return a.service
}

// Clock is the clock used for "today"
func (a *App) Clock() domain.Clock {
	return a.clock
}

// Serve runs the HTTP server until ctx is cancelled
func (a *App) Serve(ctx context.Context) error {
	srv := server.New(a.log, server.Config{
		ListenAddr:   a.config.ListenAddr,
		ImageBaseURL: a.config.ImageBaseURL,
		AdminToken:   a.config.AdminToken,
	}, a.service, a.clock, a.db)

	return srv.ListenAndServe(ctx)
}

// Import validates and adds every image listed in a YAML file. Nothing is
// written if any entry fails to parse or validate.
func (a *App) Import(ctx context.Context, path string) ([]int64, error) {
	images, err := a.fileRepo.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	for i, img := range images {
		if err := img.Validate(); err != nil {
			return nil, fmt.Errorf("image #%d: %w", i+1, err)
		}
	}

	ids := make([]int64, 0, len(images))
	for _, img := range images {
		id, err := a.service.AddImage(ctx, img)
		if err != nil {
			return ids, fmt.Errorf("failed to add %s: %w", img.ImagePath, err)
		}
		ids = append(ids, id)
	}

	a.log.Info().Str("path", path).Int("count", len(ids)).Msg("Imported seasonal images")
	return ids, nil
}

// ExportFormat selects the export encoding
type ExportFormat string

const (
	ExportYAML ExportFormat = "yaml"
	ExportICS  ExportFormat = "ics"
)

// ParseExportFormat accepts yaml/yml and ics/ical
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "", "yaml", "yml":
		return ExportYAML, nil
	case "ics", "ical":
		return ExportICS, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'yaml' or 'ics')", s)
	}
}

// Export writes every image to w in the given format
func (a *App) Export(ctx context.Context, w io.Writer, format ExportFormat) error {
	images, err := a.service.GetAllImages(ctx)
	if err != nil {
		return err
	}

	switch format {
	case ExportICS:
		return calendar.Encode(w, images, a.clock.Now())
	default:
		return a.fileRepo.Encode(w, images)
	}
}

// Overlaps lists enabled records with equal priority and shared days
func (a *App) Overlaps(ctx context.Context) ([]seasonal.Overlap, error) {
	images, err := a.service.GetAllImages(ctx)
	if err != nil {
		return nil, err
	}
	return seasonal.FindOverlaps(images), nil
}
