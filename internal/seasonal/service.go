package seasonal

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/seasonal/internal/domain"
)

// Service resolves the active seasonal image and owns the write path that
// keeps the cached result consistent with administrator edits
type Service interface {
	GetActiveImage(ctx context.Context, now time.Time) (*domain.SeasonalImage, error)
	GetAllImages(ctx context.Context) ([]domain.SeasonalImage, error)
	GetImage(ctx context.Context, id int64) (*domain.SeasonalImage, error)
	AddImage(ctx context.Context, img domain.SeasonalImage) (int64, error)
	UpdateImage(ctx context.Context, id int64, update domain.ImageUpdate) (bool, error)
	DeleteImage(ctx context.Context, id int64) (bool, error)
	ToggleEnabled(ctx context.Context, id int64) (bool, error)
	ValidateDate(month, day int) bool
}

type service struct {
	log      zerolog.Logger
	repo     domain.ImageRepo
	cache    *ActiveCache
	loc      *time.Location
	notifier domain.NotificationService
}

// NewService wires the resolver to its store and cache. loc is the local
// calendar used to turn "now" into a month/day; notifier may be nil.
func NewService(log zerolog.Logger, repo domain.ImageRepo, cache *ActiveCache, loc *time.Location, notifier domain.NotificationService) Service {
	if loc == nil {
		loc = time.Local
	}

	return &service{
		log:      log.With().Str("module", "seasonal").Logger(),
		repo:     repo,
		cache:    cache,
		loc:      loc,
		notifier: notifier,
	}
}

// GetActiveImage returns the highest priority enabled record whose window
// contains now's local date, or nil when nothing is active
func (s *service) GetActiveImage(ctx context.Context, now time.Time) (*domain.SeasonalImage, error) {
	img, err := s.cache.GetOrCompute(func() (*domain.SeasonalImage, error) {
		return s.resolve(ctx, now)
	})
	if err != nil {
		return nil, err
	}

	return clone(img), nil
}

func (s *service) resolve(ctx context.Context, now time.Time) (*domain.SeasonalImage, error) {
	local := now.In(s.loc)
	month, day := int(local.Month()), local.Day()

	images, err := s.repo.ListEnabled(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list enabled images")
	}

	for i := range images {
		if images[i].Matches(month, day) {
			s.log.Debug().
				Int64("id", images[i].ID).
				Str("date", domain.FormatDate(month, day)).
				Int("priority", images[i].Priority).
				Msg("Resolved active seasonal image")
			return &images[i], nil
		}
	}

	s.log.Debug().Str("date", domain.FormatDate(month, day)).Msg("No active seasonal image")
	return nil, nil
}

// GetAllImages returns every record in resolution order
func (s *service) GetAllImages(ctx context.Context) ([]domain.SeasonalImage, error) {
	images, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list images")
	}
	return images, nil
}

// GetImage returns a record by id, or domain.ErrNotFound
func (s *service) GetImage(ctx context.Context, id int64) (*domain.SeasonalImage, error) {
	return s.repo.Get(ctx, id)
}

// AddImage validates and stores a new record
func (s *service) AddImage(ctx context.Context, img domain.SeasonalImage) (int64, error) {
	if img.Position == "" {
		img.Position = domain.DefaultPosition
	}
	if err := img.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.Insert(ctx, img)
	s.cache.Invalidate()
	if err != nil {
		return 0, errors.Wrap(err, "failed to add image")
	}

	img.ID = id
	s.log.Info().Int64("id", id).Str("image_path", img.ImagePath).Msg("Added seasonal image")
	s.notify(ctx, domain.ImageChange{Action: domain.ChangeAdded, ID: id, Image: &img})

	return id, nil
}

// UpdateImage applies a partial update. It reports false, writing nothing,
// when id does not exist.
func (s *service) UpdateImage(ctx context.Context, id int64, update domain.ImageUpdate) (bool, error) {
	ok, img, err := s.update(ctx, id, update)
	s.cache.Invalidate()
	if err != nil || !ok {
		return ok, err
	}

	s.log.Info().Int64("id", id).Msg("Updated seasonal image")
	s.notify(ctx, domain.ImageChange{Action: domain.ChangeUpdated, ID: id, Image: img})

	return true, nil
}

func (s *service) update(ctx context.Context, id int64, update domain.ImageUpdate) (bool, *domain.SeasonalImage, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, errors.Wrap(err, "failed to load image")
	}

	update.Apply(current)
	if err := current.Validate(); err != nil {
		return false, nil, err
	}

	ok, err := s.repo.Update(ctx, id, *current)
	if err != nil {
		return false, nil, errors.Wrap(err, "failed to update image")
	}

	return ok, current, nil
}

// DeleteImage removes a record
func (s *service) DeleteImage(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	s.cache.Invalidate()
	if err != nil {
		return false, errors.Wrap(err, "failed to delete image")
	}

	if ok {
		s.log.Info().Int64("id", id).Msg("Deleted seasonal image")
		s.notify(ctx, domain.ImageChange{Action: domain.ChangeDeleted, ID: id})
	}

	return ok, nil
}

// ToggleEnabled flips the enabled flag. It reports false, writing nothing,
// when id does not exist.
func (s *service) ToggleEnabled(ctx context.Context, id int64) (bool, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to load image")
	}

	current.Enabled = !current.Enabled
	ok, err := s.repo.Update(ctx, id, *current)
	s.cache.Invalidate()
	if err != nil {
		return false, errors.Wrap(err, "failed to toggle image")
	}
	if !ok {
		return false, nil
	}

	s.log.Info().Int64("id", id).Bool("enabled", current.Enabled).Msg("Toggled seasonal image")
	s.notify(ctx, domain.ImageChange{Action: domain.ChangeToggled, ID: id, Image: current})

	return true, nil
}

// ValidateDate checks month/day against the fixed calendar shape
func (s *service) ValidateDate(month, day int) bool {
	return domain.ValidateDate(month, day)
}

func (s *service) notify(ctx context.Context, change domain.ImageChange) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendChange(ctx, change); err != nil {
		s.log.Warn().Err(err).Str("action", string(change.Action)).Msg("Failed to send change notification")
	}
}

func clone(img *domain.SeasonalImage) *domain.SeasonalImage {
	if img == nil {
		return nil
	}
	c := *img
	return &c
}
