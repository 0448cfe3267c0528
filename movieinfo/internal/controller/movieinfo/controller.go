package movieinfo

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/repository"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
	"github.com/jeisonBorba/reactive-app/pkg/broadcast"
)

// ErrNotFound is returned when a requested movie info record does not exist.
var ErrNotFound = errors.New("movie info not found")

type movieInfoRepository interface {
	Create(ctx context.Context, info *model.MovieInfo) (*model.MovieInfo, error)
	Get(ctx context.Context, id string) (*model.MovieInfo, error)
	List(ctx context.Context, year *int) ([]model.MovieInfo, error)
	Update(ctx context.Context, info *model.MovieInfo) error
	Delete(ctx context.Context, id string) error
}

type movieInfoCache interface {
	Get(ctx context.Context, id string) (*model.MovieInfo, error)
	Put(ctx context.Context, id string, info *model.MovieInfo) error
	Del(ctx context.Context, id string) error
}

// Controller validates and mediates between the API surface and the movie
// info repository. Every newly created record is also published on the
// updates broadcast for streaming subscribers.
type Controller struct {
	repo    movieInfoRepository
	cache   movieInfoCache
	updates *broadcast.Broadcast[model.MovieInfo]
	logger  *zap.Logger
}

// New creates a movie info controller. cache may be nil, in which case
// get-by-id always hits the repository.
func New(repo movieInfoRepository, cache movieInfoCache, logger *zap.Logger) *Controller {
	return &Controller{
		repo:    repo,
		cache:   cache,
		updates: broadcast.New[model.MovieInfo](),
		logger:  logger,
	}
}

// Create validates and persists a new record, then publishes the stored
// record on the updates broadcast.
func (c *Controller) Create(ctx context.Context, info *model.MovieInfo) (*model.MovieInfo, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	created, err := c.repo.Create(ctx, info)
	if err != nil {
		return nil, err
	}
	c.updates.Publish(*created)
	return created, nil
}

// Get retrieves a record by id, consulting the cache first.
func (c *Controller) Get(ctx context.Context, id string) (*model.MovieInfo, error) {
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, id); err == nil {
			return cached, nil
		}
	}
	res, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Put(ctx, id, res); err != nil {
			c.logger.Warn("Error updating cache", zap.Error(err))
		}
	}
	return res, nil
}

// List returns all records, optionally filtered by release year.
func (c *Controller) List(ctx context.Context, year *int) ([]model.MovieInfo, error) {
	return c.repo.List(ctx, year)
}

// Update merges the patch's mutable fields into the existing record and
// persists it. The record id is carried through unmodified; a missing id
// never turns into an insert.
func (c *Controller) Update(ctx context.Context, id string, patch *model.MovieInfo) (*model.MovieInfo, error) {
	existing, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	existing.Name = patch.Name
	existing.Year = patch.Year
	existing.Cast = patch.Cast
	existing.ReleaseDate = patch.ReleaseDate
	if err := c.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.invalidate(ctx, id)
	return existing, nil
}

// Delete removes a record by id. Deleting an already-deleted id fails with
// ErrNotFound.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// Updates subscribes to the live feed of created records. The latest created
// record, if any, is delivered immediately.
func (c *Controller) Updates(ctx context.Context) <-chan model.MovieInfo {
	return c.updates.Subscribe(ctx)
}

// Close shuts down the updates broadcast, terminating all subscribers.
func (c *Controller) Close() {
	c.updates.Close()
}

func (c *Controller) invalidate(ctx context.Context, id string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Del(ctx, id); err != nil {
		c.logger.Warn("Error invalidating cache", zap.Error(err))
	}
}
