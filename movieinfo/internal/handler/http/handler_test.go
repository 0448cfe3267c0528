package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/controller/movieinfo"
	"github.com/jeisonBorba/reactive-app/movieinfo/internal/repository/memory"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
)

func newServer(t *testing.T) (*httptest.Server, *movieinfo.Controller) {
	t.Helper()
	ctrl := movieinfo.New(memory.New(), nil, zap.NewNop())
	e := echo.New()
	New(ctrl, zap.NewNop()).Register(e)
	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		srv.Close()
		ctrl.Close()
	})
	return srv, ctrl
}

func createInfo(t *testing.T, srv *httptest.Server, body string) model.MovieInfo {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/movieinfos", echo.MIMEApplicationJSON, strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.MovieInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

const darkKnightRises = `{"name":"Dark Knight Rises","year":2012,"cast":["Christian Bale","Tom Hardy"],"release_date":"2012-07-20"}`

func TestCreateThenGetByID(t *testing.T) {
	srv, _ := newServer(t)

	created := createInfo(t, srv, darkKnightRises)
	require.NotEmpty(t, created.ID)

	resp, err := http.Get(srv.URL + "/v1/movieinfos/" + created.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.MovieInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Dark Knight Rises", got.Name)
	assert.Equal(t, 2012, got.Year)
	assert.Equal(t, []string{"Christian Bale", "Tom Hardy"}, got.Cast)
	assert.Equal(t, model.MustParseDate("2012-07-20"), got.ReleaseDate)
}

func TestGetMissingID(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/v1/movieinfos/def")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateValidationFailure(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Post(srv.URL+"/v1/movieinfos", echo.MIMEApplicationJSON,
		strings.NewReader(`{"name":"","year":-2005,"cast":[""],"release_date":"2005-06-15"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "movieInfo.cast must be present,movieInfo.name must be present,movieInfo.year must be a positive value", readAll(t, resp))
}

func TestListWithYearFilter(t *testing.T) {
	srv, _ := newServer(t)

	createInfo(t, srv, `{"name":"Batman Begins","year":2005,"cast":["Christian Bale","Michael Cane"],"release_date":"2005-06-15"}`)
	createInfo(t, srv, darkKnightRises)

	resp, err := http.Get(srv.URL + "/v1/movieinfos?year=2005")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []model.MovieInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "Batman Begins", infos[0].Name)
}

func TestUpdateMissingID(t *testing.T) {
	srv, _ := newServer(t)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/movieinfos/def", strings.NewReader(darkKnightRises))
	require.NoError(t, err)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteTwice(t *testing.T) {
	srv, _ := newServer(t)
	created := createInfo(t, srv, darkKnightRises)

	del := func() int {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/movieinfos/"+created.ID, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusNoContent, del())
	assert.Equal(t, http.StatusNotFound, del())
}

func TestStreamReplaysLatestThenFollows(t *testing.T) {
	srv, _ := newServer(t)

	createInfo(t, srv, `{"name":"Batman Begins","year":2005,"cast":["Christian Bale","Michael Cane"],"release_date":"2005-06-15"}`)
	latest := createInfo(t, srv, darkKnightRises)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/movieinfos/stream", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ndjsonContentType, resp.Header.Get(echo.HeaderContentType))

	scanner := bufio.NewScanner(resp.Body)
	lines := make(chan string)
	go func() {
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	// The subscriber attached after two creates sees only the latest one.
	var first model.MovieInfo
	require.NoError(t, json.Unmarshal([]byte(<-lines), &first))
	assert.Equal(t, latest.ID, first.ID)

	// A create issued while the stream is open arrives next, in order.
	created := createInfo(t, srv, `{"name":"The Dark Knight","year":2008,"cast":["Christian Bale","Heath Ledger"],"release_date":"2008-07-18"}`)
	var second model.MovieInfo
	require.NoError(t, json.Unmarshal([]byte(<-lines), &second))
	assert.Equal(t, created.ID, second.ID)
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return sb.String()
}
