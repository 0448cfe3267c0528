package memory

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/repository"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
)

func newInfo(name string, year int) *model.MovieInfo {
	return &model.MovieInfo{
		Name:        name,
		Year:        year,
		Cast:        []string{"Christian Bale"},
		ReleaseDate: model.MustParseDate("2005-06-15"),
	}
}

func TestCreateAssignsIDAndGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	repo := New()

	in := newInfo("Batman Begins", 2005)
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, in.ID, "input must not be mutated")

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)

	want := *in
	want.ID = created.ID
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("stored record mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMissing(t *testing.T) {
	_, err := New().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListYearFilter(t *testing.T) {
	ctx := context.Background()
	repo := New()
	_, err := repo.Create(ctx, newInfo("Batman Begins", 2005))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newInfo("The Dark Knight", 2008))
	require.NoError(t, err)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	year := 2008
	filtered, err := repo.List(ctx, &year)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "The Dark Knight", filtered[0].Name)
}

func TestUpdateMissingDoesNotUpsert(t *testing.T) {
	ctx := context.Background()
	repo := New()

	info := newInfo("Batman Begins", 2005)
	info.ID = "missing"
	err := repo.Update(ctx, info)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	repo := New()
	created, err := repo.Create(ctx, newInfo("Batman Begins", 2005))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), repository.ErrNotFound)
}
