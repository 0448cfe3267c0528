package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieInfoJSON(t *testing.T) {
	m := MovieInfo{
		ID:          "abc",
		Name:        "Dark Knight Rises",
		Year:        2012,
		Cast:        []string{"Christian Bale", "Tom Hardy"},
		ReleaseDate: MustParseDate("2012-07-20"),
	}

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"movieInfoId": "abc",
		"name": "Dark Knight Rises",
		"year": 2012,
		"cast": ["Christian Bale", "Tom Hardy"],
		"release_date": "2012-07-20"
	}`, string(b))

	var back MovieInfo
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, m, back)
}

func TestMovieInfoIDOmittedWhenUnset(t *testing.T) {
	b, err := json.Marshal(MovieInfo{Name: "Batman Begins", Year: 2005, Cast: []string{"Christian Bale"}, ReleaseDate: MustParseDate("2005-06-15")})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "movieInfoId")
}

func TestMovieInfoValidate(t *testing.T) {
	valid := MovieInfo{Name: "Batman Begins", Year: 2005, Cast: []string{"Christian Bale", "Michael Cane"}, ReleaseDate: MustParseDate("2005-06-15")}
	assert.NoError(t, valid.Validate())

	invalid := MovieInfo{Name: "", Year: -2005, Cast: []string{""}}
	err := invalid.Validate()
	require.Error(t, err)
	assert.Equal(t, "movieInfo.cast must be present,movieInfo.name must be present,movieInfo.year must be a positive value", err.Error())
}
