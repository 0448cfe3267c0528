// Package mysql implements the movie info repository on MySQL. Cast lists
// are stored as a JSON column; single-row replaces are atomic at the store
// level, which is all the read-modify-write update path needs.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/repository"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
)

// Repository defines a MySQL-based movie info repository.
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

// Create stores a new movie info record, assigning its id.
func (r *Repository) Create(ctx context.Context, info *model.MovieInfo) (*model.MovieInfo, error) {
	stored := *info
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	cast, err := json.Marshal(stored.Cast)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO movie_infos (id, name, year, `cast`, release_date) VALUES (?, ?, ?, ?, ?)",
		stored.ID, stored.Name, stored.Year, cast, stored.ReleaseDate.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Get retrieves a movie info record by id.
func (r *Repository) Get(ctx context.Context, id string) (*model.MovieInfo, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, year, `cast`, release_date FROM movie_infos WHERE id = ?", id)
	info, err := scanMovieInfo(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	return info, err
}

// List returns all movie info records, optionally filtered by release year.
func (r *Repository) List(ctx context.Context, year *int) ([]model.MovieInfo, error) {
	query := "SELECT id, name, year, `cast`, release_date FROM movie_infos"
	args := []interface{}{}
	if year != nil {
		query += " WHERE year = ?"
		args = append(args, *year)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.MovieInfo{}
	for rows.Next() {
		info, err := scanMovieInfo(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, *info)
	}
	return res, rows.Err()
}

// Update replaces the mutable fields of an existing record; it never creates
// a new one.
func (r *Repository) Update(ctx context.Context, info *model.MovieInfo) error {
	cast, err := json.Marshal(info.Cast)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE movie_infos SET name = ?, year = ?, `cast` = ?, release_date = ? WHERE id = ?",
		info.Name, info.Year, cast, info.ReleaseDate.Format("2006-01-02"), info.ID)
	if err != nil {
		return err
	}
	return errNotFoundOnZeroRows(res)
}

// Delete removes a record by id, failing with ErrNotFound when it is absent.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movie_infos WHERE id = ?", id)
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

func scanMovieInfo(scan func(dest ...interface{}) error) (*model.MovieInfo, error) {
	var info model.MovieInfo
	var cast []byte
	var releaseDate string
	if err := scan(&info.ID, &info.Name, &info.Year, &cast, &releaseDate); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cast, &info.Cast); err != nil {
		return nil, err
	}
	d, err := model.ParseDate(releaseDate)
	if err != nil {
		return nil, err
	}
	info.ReleaseDate = d
	return &info, nil
}
