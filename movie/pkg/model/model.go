package model

import (
	movieinfomodel "github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
	reviewmodel "github.com/jeisonBorba/reactive-app/review/pkg/model"
)

// MovieDetails is the per-request composition of a movie info record and its
// reviews. It is built for one response and never persisted.
type MovieDetails struct {
	MovieInfo  movieinfomodel.MovieInfo `json:"movieInfo"`
	ReviewList []reviewmodel.Review     `json:"reviewList"`
}
