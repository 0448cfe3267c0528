package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/jeisonBorba/reactive-app/review/internal/repository"
	"github.com/jeisonBorba/reactive-app/review/pkg/model"
)

const tracerID = "review-repository-memory"

// Repository defines an in-memory review repository.
type Repository struct {
	sync.RWMutex
	data map[string]*model.Review
}

// New creates a new memory repository.
func New() *Repository {
	return &Repository{data: map[string]*model.Review{}}
}

// Create stores a new review, assigning its id.
func (r *Repository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Create")
	defer span.End()

	stored := *review
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.data[stored.ID] = &stored
	return &stored, nil
}

// Get retrieves a review by id.
func (r *Repository) Get(ctx context.Context, id string) (*model.Review, error) {
	r.RLock()
	defer r.RUnlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Get")
	defer span.End()

	rev, ok := r.data[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	res := *rev
	return &res, nil
}

// List returns all reviews, optionally filtered by movie info id.
func (r *Repository) List(ctx context.Context, movieInfoID *int64) ([]model.Review, error) {
	r.RLock()
	defer r.RUnlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/List")
	defer span.End()

	res := []model.Review{}
	for _, rev := range r.data {
		if movieInfoID != nil && (rev.MovieInfoID == nil || *rev.MovieInfoID != *movieInfoID) {
			continue
		}
		res = append(res, *rev)
	}
	return res, nil
}

// Update replaces an existing review; it never creates a new one.
func (r *Repository) Update(ctx context.Context, review *model.Review) error {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Update")
	defer span.End()

	if _, ok := r.data[review.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *review
	r.data[stored.ID] = &stored
	return nil
}

// Delete removes a review by id, failing with ErrNotFound when it is absent.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Delete")
	defer span.End()

	if _, ok := r.data[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.data, id)
	return nil
}
