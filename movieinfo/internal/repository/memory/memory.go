package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/repository"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
)

const tracerID = "movieinfo-repository-memory"

// Repository defines an in-memory movie info repository.
type Repository struct {
	sync.RWMutex
	data map[string]*model.MovieInfo
}

// New creates a new memory repository.
func New() *Repository {
	return &Repository{data: map[string]*model.MovieInfo{}}
}

// Create stores a new movie info record, assigning its id.
func (r *Repository) Create(ctx context.Context, info *model.MovieInfo) (*model.MovieInfo, error) {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Create")
	defer span.End()

	stored := *info
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.data[stored.ID] = &stored
	return &stored, nil
}

// Get retrieves a movie info record by id.
func (r *Repository) Get(ctx context.Context, id string) (*model.MovieInfo, error) {
	r.RLock()
	defer r.RUnlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Get")
	defer span.End()

	m, ok := r.data[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	res := *m
	return &res, nil
}

// List returns all movie info records, optionally filtered by release year.
func (r *Repository) List(ctx context.Context, year *int) ([]model.MovieInfo, error) {
	r.RLock()
	defer r.RUnlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/List")
	defer span.End()

	res := []model.MovieInfo{}
	for _, m := range r.data {
		if year != nil && m.Year != *year {
			continue
		}
		res = append(res, *m)
	}
	return res, nil
}

// Update replaces an existing record. The record's id must already exist;
// update never creates a new record.
func (r *Repository) Update(ctx context.Context, info *model.MovieInfo) error {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Update")
	defer span.End()

	if _, ok := r.data[info.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *info
	r.data[stored.ID] = &stored
	return nil
}

// Delete removes a record by id, failing with ErrNotFound when it is absent.
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
