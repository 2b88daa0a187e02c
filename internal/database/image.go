package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/seasonal/internal/domain"
)

const imageTable = "seasonal_images"

var imageColumns = []string{
	"id",
	"start_month",
	"start_day",
	"end_month",
	"end_day",
	"image_path",
	"enabled",
	"position",
	"priority",
	"description",
}

// ImageRepo implements domain.ImageRepo on top of sqlite
type ImageRepo struct {
	log zerolog.Logger
	db  *DB
}

// NewImageRepo creates a new seasonal image repository
func NewImageRepo(log zerolog.Logger, db *DB) domain.ImageRepo {
	return &ImageRepo{
		log: log.With().Str("repo", "seasonal_images").Logger(),
		db:  db,
	}
}

func (r *ImageRepo) selectImages() sq.SelectBuilder {
	return r.db.squirrel.
		Select(imageColumns...).
		From(imageTable).
		OrderBy("priority DESC", "start_month ASC", "start_day ASC", "id ASC")
}

// ListEnabled returns every enabled record in resolution order
func (r *ImageRepo) ListEnabled(ctx context.Context) ([]domain.SeasonalImage, error) {
	return r.list(ctx, r.selectImages().Where(sq.Eq{"enabled": true}), "ListEnabled")
}

// ListAll returns every record in resolution order
func (r *ImageRepo) ListAll(ctx context.Context) ([]domain.SeasonalImage, error) {
	return r.list(ctx, r.selectImages(), "ListAll")
}

func (r *ImageRepo) list(ctx context.Context, queryBuilder sq.SelectBuilder, op string) ([]domain.SeasonalImage, error) {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg(op)

	r.db.lock.RLock()
	defer r.db.lock.RUnlock()

	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError(err, "error executing query")
	}
	defer rows.Close()

	images := []domain.SeasonalImage{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, domain.NewStoreError(err, "error scanning row")
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError(err, "error iterating rows")
	}

	return images, nil
}

// Get returns a single record by id
func (r *ImageRepo) Get(ctx context.Context, id int64) (*domain.SeasonalImage, error) {
	queryBuilder := r.db.squirrel.
		Select(imageColumns...).
		From(imageTable).
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Get")

	r.db.lock.RLock()
	defer r.db.lock.RUnlock()

	img, err := scanImage(r.db.handler.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(domain.ErrNotFound, "id %d", id)
		}
		return nil, domain.NewStoreError(err, "error executing query")
	}

	return &img, nil
}

// Insert stores a new record and returns its id
func (r *ImageRepo) Insert(ctx context.Context, img domain.SeasonalImage) (int64, error) {
	queryBuilder := r.db.squirrel.
		Insert(imageTable).
		Columns(imageColumns[1:]...).
		Values(
			img.StartMonth,
			img.StartDay,
			img.EndMonth,
			img.EndDay,
			img.ImagePath,
			img.Enabled,
			string(img.Position),
			img.Priority,
			img.Description,
		)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Insert")

	r.db.lock.Lock()
	defer r.db.lock.Unlock()

	res, err := r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, domain.NewStoreError(err, "error executing query")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.NewStoreError(err, "error reading inserted id")
	}

	return id, nil
}

// Update overwrites every field of the record with the given id
func (r *ImageRepo) Update(ctx context.Context, id int64, img domain.SeasonalImage) (bool, error) {
	queryBuilder := r.db.squirrel.
		Update(imageTable).
		SetMap(map[string]interface{}{
			"start_month": img.StartMonth,
			"start_day":   img.StartDay,
			"end_month":   img.EndMonth,
			"end_day":     img.EndDay,
			"image_path":  img.ImagePath,
			"enabled":     img.Enabled,
			"position":    string(img.Position),
			"priority":    img.Priority,
			"description": img.Description,
			"updated_at":  time.Now().UTC().Format(time.RFC3339),
		}).
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return false, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Update")

	return r.exec(ctx, query, args)
}

// Delete removes the record with the given id
func (r *ImageRepo) Delete(ctx context.Context, id int64) (bool, error) {
	queryBuilder := r.db.squirrel.
		Delete(imageTable).
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return false, errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Delete")

	return r.exec(ctx, query, args)
}

func (r *ImageRepo) exec(ctx context.Context, query string, args []interface{}) (bool, error) {
	r.db.lock.Lock()
	defer r.db.lock.Unlock()

	res, err := r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return false, domain.NewStoreError(err, "error executing query")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, domain.NewStoreError(err, "error reading affected rows")
	}

	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImage(row rowScanner) (domain.SeasonalImage, error) {
	var (
		img      domain.SeasonalImage
		position string
	)

	err := row.Scan(
		&img.ID,
		&img.StartMonth,
		&img.StartDay,
		&img.EndMonth,
		&img.EndDay,
		&img.ImagePath,
		&img.Enabled,
		&position,
		&img.Priority,
		&img.Description,
	)
	if err != nil {
		return img, err
	}

	img.Position = domain.Position(position)
	return img, nil
}
