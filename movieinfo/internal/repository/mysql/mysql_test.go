package mysql

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/repository"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
)

// The equal matcher pins the exact statement text, including the quoting of
// the reserved cast column, which a live server would otherwise reject.
func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Repository{db}, mock
}

func TestCreateInsertsRecord(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("INSERT INTO movie_infos (id, name, year, `cast`, release_date) VALUES (?, ?, ?, ?, ?)").
		WithArgs(sqlmock.AnyArg(), "Batman Begins", 2005, []byte(`["Christian Bale"]`), "2005-06-15").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), &model.MovieInfo{
		Name:        "Batman Begins",
		Year:        2005,
		Cast:        []string{"Christian Bale"},
		ReleaseDate: model.MustParseDate("2005-06-15"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetScansRecord(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"id", "name", "year", "cast", "release_date"}).
		AddRow("abc", "Dark Knight Rises", 2012, []byte(`["Christian Bale","Tom Hardy"]`), "2012-07-20")
	mock.ExpectQuery("SELECT id, name, year, `cast`, release_date FROM movie_infos WHERE id = ?").
		WithArgs("abc").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "abc")
	require.NoError(t, err)

	want := &model.MovieInfo{
		ID:          "abc",
		Name:        "Dark Knight Rises",
		Year:        2012,
		Cast:        []string{"Christian Bale", "Tom Hardy"},
		ReleaseDate: model.MustParseDate("2012-07-20"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissing(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT id, name, year, `cast`, release_date FROM movie_infos WHERE id = ?").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListYearFilter(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"id", "name", "year", "cast", "release_date"}).
		AddRow("abc", "Dark Knight Rises", 2012, []byte(`["Christian Bale"]`), "2012-07-20")
	mock.ExpectQuery("SELECT id, name, year, `cast`, release_date FROM movie_infos WHERE year = ?").
		WithArgs(2012).
		WillReturnRows(rows)

	year := 2012
	res, err := repo.List(context.Background(), &year)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Dark Knight Rises", res[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissing(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE movie_infos SET name = ?, year = ?, `cast` = ?, release_date = ? WHERE id = ?").
		WithArgs("Batman Begins", 2005, []byte(`["Christian Bale"]`), "2005-06-15", "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.MovieInfo{
		ID:          "nope",
		Name:        "Batman Begins",
		Year:        2005,
		Cast:        []string{"Christian Bale"},
		ReleaseDate: model.MustParseDate("2005-06-15"),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteMissing(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("DELETE FROM movie_infos WHERE id = ?").
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), repository.ErrNotFound)
}
