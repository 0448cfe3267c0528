package review

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/pkg/broadcast"
	"github.com/jeisonBorba/reactive-app/review/internal/repository"
	"github.com/jeisonBorba/reactive-app/review/pkg/model"
)

// ErrNotFound is returned when a requested review does not exist.
var ErrNotFound = errors.New("review not found")

type reviewRepository interface {
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	Get(ctx context.Context, id string) (*model.Review, error)
	List(ctx context.Context, movieInfoID *int64) ([]model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) error
}

type ingester interface {
	Ingest(ctx context.Context) (chan model.ReviewEvent, error)
}

// Controller validates and mediates between the API surface and the review
// repository. Every newly created review is also published on the updates
// broadcast for streaming subscribers.
type Controller struct {
	repo     reviewRepository
	ingester ingester
	updates  *broadcast.Broadcast[model.Review]
	logger   *zap.Logger
}

// New creates a review controller. ingester may be nil when event ingestion
// is disabled.
func New(repo reviewRepository, ingester ingester, logger *zap.Logger) *Controller {
	return &Controller{
		repo:     repo,
		ingester: ingester,
		updates:  broadcast.New[model.Review](),
		logger:   logger,
	}
}

// Create validates and persists a new review, then publishes the stored
// review on the updates broadcast.
func (c *Controller) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}
	created, err := c.repo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	c.updates.Publish(*created)
	return created, nil
}

// Get retrieves a review by id.
func (c *Controller) Get(ctx context.Context, id string) (*model.Review, error) {
	res, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// List returns all reviews, optionally filtered by movie info id.
func (c *Controller) List(ctx context.Context, movieInfoID *int64) ([]model.Review, error) {
	return c.repo.List(ctx, movieInfoID)
}

// Update merges the patch's mutable fields (comment and rating) into the
// existing review and persists it. A missing id never turns into an insert.
func (c *Controller) Update(ctx context.Context, id string, patch *model.Review) (*model.Review, error) {
	existing, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	existing.Comment = patch.Comment
	existing.Rating = patch.Rating
	if err := c.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes a review by id. Deleting an already-deleted id fails with
// ErrNotFound.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Updates subscribes to the live feed of created reviews. The latest created
// review, if any, is delivered immediately.
func (c *Controller) Updates(ctx context.Context) <-chan model.Review {
	return c.updates.Subscribe(ctx)
}

// StartIngestion consumes review events and applies them through the regular
// create/delete paths until ctx is cancelled or the event channel closes.
func (c *Controller) StartIngestion(ctx context.Context) error {
	ch, err := c.ingester.Ingest(ctx)
	if err != nil {
		return err
	}
	for e := range ch {
		switch e.EventType {
		case model.ReviewEventTypePut:
			if _, err := c.Create(ctx, &e.Review); err != nil {
				c.logger.Warn("Failed to ingest review event", zap.Error(err))
			}
		case model.ReviewEventTypeDelete:
			if err := c.Delete(ctx, e.ID); err != nil {
				c.logger.Warn("Failed to ingest review delete event", zap.Error(err))
			}
		default:
			c.logger.Warn("Unknown review event type", zap.String("eventType", string(e.EventType)))
		}
	}
	return nil
}

// Close shuts down the updates broadcast, terminating all subscribers.
func (c *Controller) Close() {
	c.updates.Close()
}
