// Package mysql implements the review repository on MySQL.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/jeisonBorba/reactive-app/review/internal/repository"
	"github.com/jeisonBorba/reactive-app/review/pkg/model"
)

// Repository defines a MySQL-based review repository.
type Repository struct {
	db *sql.DB
}

// New creates a new MySQL-based repository from a DSN.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}
	return &Repository{db}, nil
}

// Create stores a new review, assigning its id.
func (r *Repository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	stored := *review
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (id, movie_info_id, comment, rating) VALUES (?, ?, ?, ?)",
		stored.ID, stored.MovieInfoID, stored.Comment, stored.Rating)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Get retrieves a review by id.
func (r *Repository) Get(ctx context.Context, id string) (*model.Review, error) {
	var review model.Review
	err := r.db.QueryRowContext(ctx,
		"SELECT id, movie_info_id, comment, rating FROM reviews WHERE id = ?", id).
		Scan(&review.ID, &review.MovieInfoID, &review.Comment, &review.Rating)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// List returns all reviews, optionally filtered by movie info id.
func (r *Repository) List(ctx context.Context, movieInfoID *int64) ([]model.Review, error) {
	query := "SELECT id, movie_info_id, comment, rating FROM reviews"
	args := []interface{}{}
	if movieInfoID != nil {
		query += " WHERE movie_info_id = ?"
		args = append(args, *movieInfoID)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.Review{}
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(&review.ID, &review.MovieInfoID, &review.Comment, &review.Rating); err != nil {
			return nil, err
		}
		res = append(res, review)
	}
	return res, rows.Err()
}

// Update replaces the mutable fields of an existing review; it never creates
// a new one.
func (r *Repository) Update(ctx context.Context, review *model.Review) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET comment = ?, rating = ? WHERE id = ?",
		review.Comment, review.Rating, review.ID)
	if err != nil {
		return err
	}
	return errNotFoundOnZeroRows(res)
}

// Delete removes a review by id, failing with ErrNotFound when it is absent.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return err
	}
	return errNotFoundOnZeroRows(res)
}

func errNotFoundOnZeroRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
