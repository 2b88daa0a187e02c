package seasonal

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/seasonal/internal/domain"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo domain.ImageRepo, notifier domain.NotificationService) Service {
	return NewService(zerolog.Nop(), repo, NewActiveCache(time.Hour), time.UTC, notifier)
}

func TestGetActiveImage_Scenarios(t *testing.T) {
	christmas := seasonalImage(12, 20, 12, 26, 1)
	christmas.Description = "Christmas Hat"

	winter := seasonalImage(12, 1, 1, 15, 1)
	winter.Description = "A"
	january := seasonalImage(1, 1, 1, 31, 5)
	january.Description = "B"

	tests := []struct {
		name   string
		images []domain.SeasonalImage
		now    time.Time
		want   string
	}{
		{name: "inside single range", images: []domain.SeasonalImage{christmas}, now: date(time.December, 25), want: "Christmas Hat"},
		{name: "outside single range", images: []domain.SeasonalImage{christmas}, now: date(time.January, 10), want: ""},
		{name: "first day inclusive", images: []domain.SeasonalImage{christmas}, now: date(time.December, 20), want: "Christmas Hat"},
		{name: "last day inclusive", images: []domain.SeasonalImage{christmas}, now: date(time.December, 26), want: "Christmas Hat"},
		{name: "higher priority wins", images: []domain.SeasonalImage{winter, january}, now: date(time.January, 10), want: "B"},
		{name: "wrap range alone", images: []domain.SeasonalImage{winter, january}, now: date(time.December, 5), want: "A"},
		{name: "no record", images: nil, now: date(time.June, 1), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMemRepo(tt.images...), nil)

			got, err := svc.GetActiveImage(context.Background(), tt.now)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Description)
		})
	}
}

func TestGetActiveImage_PriorityTieUsesStartDate(t *testing.T) {
	later := seasonalImage(12, 10, 12, 31, 2)
	later.Description = "later"
	earlier := seasonalImage(12, 1, 12, 31, 2)
	earlier.Description = "earlier"

	svc := newTestService(newMemRepo(later, earlier), nil)

	got, err := svc.GetActiveImage(context.Background(), date(time.December, 15))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "earlier", got.Description)
}

func TestGetActiveImage_UsesConfiguredLocation(t *testing.T) {
	img := seasonalImage(1, 1, 1, 1, 1)
	repo := newMemRepo(img)

	tokyo := time.FixedZone("JST", 9*60*60)
	svc := NewService(zerolog.Nop(), repo, NewActiveCache(time.Hour), tokyo, nil)

	// Dec 31 20:00 UTC is already Jan 1 in Tokyo
	got, err := svc.GetActiveImage(context.Background(), time.Date(2025, time.December, 31, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestGetActiveImage_CachesResult(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 1))
	svc := newTestService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.GetActiveImage(ctx, date(time.December, 25))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.calls())

	// the negative outcome is cached too
	repo2 := newMemRepo()
	svc2 := newTestService(repo2, nil)
	for i := 0; i < 3; i++ {
		got, err := svc2.GetActiveImage(ctx, date(time.March, 1))
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.Equal(t, 1, repo2.calls())
}

func TestGetActiveImage_ReturnsCopy(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 1))
	svc := newTestService(repo, nil)
	ctx := context.Background()

	got, err := svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)
	got.ImagePath = "mutated.png"

	again, err := svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)
	assert.Equal(t, "overlay.png", again.ImagePath)
}

func TestGetActiveImage_StoreFailurePropagates(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 1))
	repo.failList = domain.NewStoreError(errors.New("disk I/O error"), "error executing query")
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.GetActiveImage(ctx, date(time.December, 25))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))

	// failure is not cached: the next read hits the store again
	repo.failList = nil
	got, err := svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, 2, repo.calls())
}

func TestToggleEnabled_HidesRecord(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 1))
	svc := newTestService(repo, nil)
	ctx := context.Background()

	got, err := svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)
	require.NotNil(t, got)

	ok, err := svc.ToggleEnabled(ctx, got.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)
	assert.Nil(t, got, "disabled record must not be resolved")

	ok, err = svc.ToggleEnabled(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestToggleEnabled_MissingID(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	ok, err := svc.ToggleEnabled(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, notifier.actions())
}

func TestUpdateImage_InvalidatesCache(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 1))
	svc := newTestService(repo, nil)
	ctx := context.Background()

	got, err := svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)
	require.NotNil(t, got)

	disabled := false
	ok, err := svc.UpdateImage(ctx, got.ID, domain.ImageUpdate{Enabled: &disabled})
	require.NoError(t, err)
	require.True(t, ok)

	got, err = svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)
	assert.Nil(t, got, "update must invalidate the cached record within its TTL")
}

func TestUpdateImage_InvalidatesBeforeNotifying(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 1))
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	_, err := svc.GetActiveImage(ctx, date(time.December, 25))
	require.NoError(t, err)

	var seen *domain.SeasonalImage
	notifier.onSend = func() {
		seen, err = svc.GetActiveImage(ctx, date(time.December, 25))
	}

	disabled := false
	ok, uerr := svc.UpdateImage(ctx, 1, domain.ImageUpdate{Enabled: &disabled})
	require.NoError(t, uerr)
	require.True(t, ok)

	require.NoError(t, err)
	assert.Nil(t, seen, "the cache is already cleared while the notification is sent")
	assert.Equal(t, []domain.ChangeAction{domain.ChangeUpdated}, notifier.actions())
}

func TestUpdateImage_Validation(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 1))
	svc := newTestService(repo, nil)
	ctx := context.Background()

	badDay := 30
	feb := 2
	ok, err := svc.UpdateImage(ctx, 1, domain.ImageUpdate{EndMonth: &feb, EndDay: &badDay})
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	stored, err := svc.GetImage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.EndMonth, "rejected update must not reach the store")
}

func TestUpdateImage_MissingID(t *testing.T) {
	svc := newTestService(newMemRepo(), nil)

	priority := 3
	ok, err := svc.UpdateImage(context.Background(), 99, domain.ImageUpdate{Priority: &priority})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddImage(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	// warm the negative cache
	got, err := svc.GetActiveImage(ctx, date(time.October, 31))
	require.NoError(t, err)
	require.Nil(t, got)

	img := seasonalImage(10, 25, 11, 1, 1)
	img.Position = ""
	id, err := svc.AddImage(ctx, img)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err = svc.GetActiveImage(ctx, date(time.October, 31))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, domain.DefaultPosition, got.Position)

	assert.Equal(t, []domain.ChangeAction{domain.ChangeAdded}, notifier.actions())
}

func TestAddImage_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.SeasonalImage)
		field string
	}{
		{name: "bad start", edit: func(i *domain.SeasonalImage) { i.StartMonth = 13 }, field: "start"},
		{name: "bad end", edit: func(i *domain.SeasonalImage) { i.EndMonth, i.EndDay = 2, 30 }, field: "end"},
		{name: "missing path", edit: func(i *domain.SeasonalImage) { i.ImagePath = " " }, field: "image_path"},
		{name: "bad position", edit: func(i *domain.SeasonalImage) { i.Position = "left" }, field: "position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			svc := newTestService(repo, nil)

			img := seasonalImage(1, 1, 1, 31, 1)
			tt.edit(&img)

			_, err := svc.AddImage(context.Background(), img)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)

			all, err := svc.GetAllImages(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestAddImage_NegativePriorityIsFallback(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 0))
	svc := newTestService(repo, nil)
	ctx := context.Background()

	fallback := seasonalImage(12, 1, 12, 31, -1)
	fallback.ImagePath = "snow.png"
	id, err := svc.AddImage(ctx, fallback)
	require.NoError(t, err)

	stored, err := svc.GetImage(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, -1, stored.Priority)

	got, err := svc.GetActiveImage(ctx, date(time.December, 24))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "overlay.png", got.ImagePath, "default priority beats the fallback")

	svc = newTestService(repo, nil)
	got, err = svc.GetActiveImage(ctx, date(time.December, 5))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "snow.png", got.ImagePath)
}

func TestDeleteImage(t *testing.T) {
	repo := newMemRepo(seasonalImage(12, 20, 12, 26, 1))
	notifier := &recordingNotifier{err: errors.New("webhook down")}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	got, err := svc.GetActiveImage(ctx, date(time.December, 21))
	require.NoError(t, err)
	require.NotNil(t, got)

	ok, err := svc.DeleteImage(ctx, got.ID)
	require.NoError(t, err, "notification failure must not fail the write")
	assert.True(t, ok)

	got, err = svc.GetActiveImage(ctx, date(time.December, 21))
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = svc.DeleteImage(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.GetImage(ctx, 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, []domain.ChangeAction{domain.ChangeDeleted}, notifier.actions())
}

func TestValidateDate(t *testing.T) {
	svc := newTestService(newMemRepo(), nil)

	assert.False(t, svc.ValidateDate(2, 30))
	assert.True(t, svc.ValidateDate(2, 29))
	assert.False(t, svc.ValidateDate(13, 1))
}
