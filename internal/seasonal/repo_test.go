package seasonal

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/varoOP/seasonal/internal/domain"
)

// memRepo is an in-memory domain.ImageRepo with call counters
type memRepo struct {
	mu        sync.Mutex
	images    map[int64]domain.SeasonalImage
	nextID    int64
	listCalls int
	failList  error
}

func newMemRepo(images ...domain.SeasonalImage) *memRepo {
	r := &memRepo{images: make(map[int64]domain.SeasonalImage)}
	for _, img := range images {
		_, _ = r.Insert(context.Background(), img)
	}
	return r
}

func (r *memRepo) sorted(enabledOnly bool) []domain.SeasonalImage {
	out := []domain.SeasonalImage{}
	for _, img := range r.images {
		if enabledOnly && !img.Enabled {
			continue
		}
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.StartMonth != b.StartMonth {
			return a.StartMonth < b.StartMonth
		}
		if a.StartDay != b.StartDay {
			return a.StartDay < b.StartDay
		}
		return a.ID < b.ID
	})
	return out
}

func (r *memRepo) ListEnabled(ctx context.Context) ([]domain.SeasonalImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.failList != nil {
		return nil, r.failList
	}
	return r.sorted(true), nil
}

func (r *memRepo) ListAll(ctx context.Context) ([]domain.SeasonalImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(false), nil
}

func (r *memRepo) Get(ctx context.Context, id int64) (*domain.SeasonalImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return nil, errors.Wrapf(domain.ErrNotFound, "id %d", id)
	}
	return &img, nil
}

func (r *memRepo) Insert(ctx context.Context, img domain.SeasonalImage) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	img.ID = r.nextID
	r.images[img.ID] = img
	return img.ID, nil
}

func (r *memRepo) Update(ctx context.Context, id int64, img domain.SeasonalImage) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[id]; !ok {
		return false, nil
	}
	img.ID = id
	r.images[id] = img
	return true, nil
}

func (r *memRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[id]; !ok {
		return false, nil
	}
	delete(r.images, id)
	return true, nil
}

func (r *memRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

// recordingNotifier captures every change it is sent
type recordingNotifier struct {
	mu      sync.Mutex
	changes []domain.ImageChange
	err     error
	onSend  func()
}

func (n *recordingNotifier) SendChange(ctx context.Context, change domain.ImageChange) error {
	if n.onSend != nil {
		n.onSend()
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return n.err
}

func (n *recordingNotifier) actions() []domain.ChangeAction {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []domain.ChangeAction
	for _, c := range n.changes {
		out = append(out, c.Action)
	}
	return out
}

func seasonalImage(startMonth, startDay, endMonth, endDay, priority int) domain.SeasonalImage {
	img := domain.NewSeasonalImage()
	img.StartMonth, img.StartDay = startMonth, startDay
	img.EndMonth, img.EndDay = endMonth, endDay
	img.Priority = priority
	img.ImagePath = "overlay.png"
	return img
}
