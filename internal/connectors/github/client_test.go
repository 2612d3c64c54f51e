package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClientWithHTTPClient(server.Client())
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.gh.BaseURL = base
	return client
}

func TestCompareSource_ChangedFiles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/dune/queries/compare/abc...def", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"files": [
			{"filename": "queries/a___10.sql", "status": "modified"},
			{"filename": "queries/b___20.sql", "status": "removed"},
			{"filename": "queries/c___30.sql", "status": "renamed", "previous_filename": "queries/old___30.sql"},
			{"filename": "README.md", "status": "added"}
		]}`)
	})

	source := NewCompareSource(client, "dune", "queries", "abc", "def")
	files, err := source.ChangedFiles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "github", source.Name())
	assert.Equal(t, []string{"queries/a___10.sql", "queries/c___30.sql", "README.md"}, files)
}

func TestClient_CompareFiles_Paginates(t *testing.T) {
	var serverURL string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "", "1":
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=2&per_page=100>; rel="next"`, serverURL, r.URL.Path))
			_, _ = io.WriteString(w, `{"files": [{"filename": "a___1.sql", "status": "added"}]}`)
		case "2":
			_, _ = io.WriteString(w, `{"files": [
				{"filename": "a___1.sql", "status": "added"},
				{"filename": "b___2.sql", "status": "modified"}
			]}`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})
	serverURL = client.gh.BaseURL.Scheme + "://" + client.gh.BaseURL.Host

	files, err := client.CompareFiles(context.Background(), "o", "r", "base", "head")

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a___1.sql", files[0].GetFilename())
	assert.Equal(t, "b___2.sql", files[1].GetFilename())
}

func TestClient_CompareFiles_MissingRef(t *testing.T) {
	client := NewClientWithHTTPClient(http.DefaultClient)

	_, err := client.CompareFiles(context.Background(), "o", "r", "", "head")

	assert.ErrorIs(t, err, ErrMissingRef)
}

func TestClient_CompareFiles_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message": "Not Found"}`)
	})

	_, err := client.CompareFiles(context.Background(), "o", "r", "a", "b")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not Found", apiErr.Message)
	assert.Contains(t, apiErr.URL, "/repos/o/r/compare/a...b")
}

func TestClient_CompareFiles_RateLimited(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(HeaderRateLimit, "60")
		w.Header().Set(HeaderRateRemaining, "0")
		w.Header().Set(HeaderRateReset, strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message": "API rate limit exceeded"}`)
	})

	_, err := client.CompareFiles(context.Background(), "o", "r", "a", "b")

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
}

func TestParseRepository(t *testing.T) {
	owner, repo, err := ParseRepository(" duneanalytics/spellbook ")
	require.NoError(t, err)
	assert.Equal(t, "duneanalytics", owner)
	assert.Equal(t, "spellbook", repo)

	for _, bad := range []string{"", "spellbook", "/spellbook", "dune/", "a/b/c"} {
		_, _, err := ParseRepository(bad)
		assert.ErrorIs(t, err, ErrInvalidRepository, bad)
	}
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	r := NewRateLimiter()
	assert.Equal(t, -1, r.Remaining())
	assert.Equal(t, -1, r.Limit())

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateLimit, "1000")
	resp.Header.Set(HeaderRateRemaining, "998")
	resp.Header.Set(HeaderRateReset, "1700000000")
	r.UpdateFromResponse(resp)

	assert.Equal(t, 1000, r.Limit())
	assert.Equal(t, 998, r.Remaining())
	assert.Equal(t, time.Unix(1700000000, 0), r.ResetTime())

	r.UpdateFromResponse(nil)
	assert.Equal(t, 998, r.Remaining())
}

func TestRateLimiter_WaitsForReset(t *testing.T) {
	r := NewRateLimiter()
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "1")
	resp.Header.Set(HeaderRateReset, strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
	r.UpdateFromResponse(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_WaitWithQuota(t *testing.T) {
	r := NewRateLimiter()

	assert.NoError(t, r.Wait(context.Background()))
}
