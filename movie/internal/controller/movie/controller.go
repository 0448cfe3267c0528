package movie

import (
	"context"
	"errors"

	"github.com/jeisonBorba/reactive-app/movie/internal/gateway"
	"github.com/jeisonBorba/reactive-app/movie/pkg/model"
	movieinfomodel "github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
	reviewmodel "github.com/jeisonBorba/reactive-app/review/pkg/model"
)

// ErrNotFound is returned when there is no movie info record for the
// requested id.
var ErrNotFound = errors.New("movie not found")

// MovieInfoGateway fetches movie info records from the movie info service.
type MovieInfoGateway interface {
	Get(ctx context.Context, id string) (*movieinfomodel.MovieInfo, error)
	GetStream(ctx context.Context) (<-chan movieinfomodel.MovieInfo, error)
}

// ReviewGateway fetches reviews from the review service.
type ReviewGateway interface {
	GetByMovieInfoID(ctx context.Context, movieInfoID string) ([]reviewmodel.Review, error)
}

// Controller composes the movie info and review gateways into movie details.
type Controller struct {
	movieInfoGateway MovieInfoGateway
	reviewGateway    ReviewGateway
}

// New creates a new movie controller.
func New(movieInfoGateway MovieInfoGateway, reviewGateway ReviewGateway) *Controller {
	return &Controller{movieInfoGateway, reviewGateway}
}

// Get returns the movie details for an id: the movie info record plus its
// reviews in arrival order. The review call is only issued once the movie
// info is resolved, since its filter depends on it. An absent review side is
// a valid business state and yields an empty list; an unavailable review
// service is not, and its failure propagates.
func (c *Controller) Get(ctx context.Context, id string) (*model.MovieDetails, error) {
	info, err := c.movieInfoGateway.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reviews, err := c.reviewGateway.GetByMovieInfoID(ctx, id)
	if err != nil && !errors.Is(err, gateway.ErrNotFound) {
		return nil, err
	}
	if reviews == nil {
		reviews = []reviewmodel.Review{}
	}
	return &model.MovieDetails{MovieInfo: *info, ReviewList: reviews}, nil
}

// GetStream proxies the movie info service's live feed of created records.
func (c *Controller) GetStream(ctx context.Context) (<-chan movieinfomodel.MovieInfo, error) {
	return c.movieInfoGateway.GetStream(ctx)
}
