package domain

import (
	"context"
)

// ImageRepo defines the interface for seasonal image storage.
// List methods order by priority desc, start_month asc, start_day asc, id asc.
type ImageRepo interface {
	ListEnabled(ctx context.Context) ([]SeasonalImage, error)
	ListAll(ctx context.Context) ([]SeasonalImage, error)
	// Get returns ErrNotFound when id does not exist
	Get(ctx context.Context, id int64) (*SeasonalImage, error)
	Insert(ctx context.Context, img SeasonalImage) (int64, error)
	// Update and Delete are no-ops on a missing id and report false
	Update(ctx context.Context, id int64, img SeasonalImage) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
