//go:build unit

package cratesio_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories/cratesio"
)

const regexVersions = `{
  "versions": [
    {"id": 3, "crate": "regex", "num": "1.4.0", "yanked": true, "updated_at": "2020-09-01T00:00:00.000000+00:00"},
    {"id": 2, "crate": "regex", "num": "1.3.0", "yanked": false, "updated_at": "2020-08-01T12:34:56.789012+00:00",
     "license": "MIT OR Apache-2.0", "crate_size": 1024, "features": {"default": ["std"]},
     "published_by": {"id": 1, "login": "alice", "name": null, "avatar": null, "url": null},
     "audit_actions": [{"action": "publish", "user": {"id": 1, "login": "alice"}, "time": "2020-08-01T12:34:56+00:00"}]},
    {"id": 1, "crate": "regex", "num": "0.1.0", "yanked": false, "updated_at": "2016-01-01T00:00:00.1+00:00"}
  ]
}`

func newRepository(t *testing.T, handler http.HandlerFunc) (*httptest.Server, entities.RegistrySettings) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, entities.RegistrySettings{
		Type:      cratesio.RegistryType,
		URL:       server.URL + "/",
		UserAgent: entities.DefaultUserAgent,
		Timeout:   5 * time.Second,
	}
}

func TestRegistryRepositoryFetchLatest(t *testing.T) {
	t.Parallel()

	t.Run("should select the newest non-yanked release", func(t *testing.T) {
		t.Parallel()

		// given
		received := make(chan *http.Request, 1)
		_, cfg := newRepository(t, func(w http.ResponseWriter, r *http.Request) {
			received <- r.Clone(context.Background())
			_, _ = w.Write([]byte(regexVersions))
		})
		repo := cratesio.NewRegistryRepository(cfg)

		// when
		info, err := repo.FetchLatest(context.Background(), "regex", entities.SelectionOptions{})

		// then
		require.NoError(t, err)
		request := <-received
		assert.Equal(t, "/api/v1/crates/regex/versions", request.URL.Path)
		assert.Equal(t, "Cargo Outdated Bot", request.Header.Get("User-Agent"))
		assert.Equal(t, "regex", info.CrateName)
		assert.Equal(t, "1.3.0", info.Version.String())
		assert.Equal(t, "2020-08-01T12:34:56", info.LastUpdated)
	})

	t.Run("should return the empty default when every release is yanked", func(t *testing.T) {
		t.Parallel()

		// given
		_, cfg := newRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"versions": [
				{"crate": "gone", "num": "0.2.0", "yanked": true, "updated_at": "2021-01-01T00:00:00+00:00"},
				{"crate": "gone", "num": "0.1.0", "yanked": true, "updated_at": "2020-01-01T00:00:00+00:00"}
			]}`))
		})
		repo := cratesio.NewRegistryRepository(cfg)

		// when
		info, err := repo.FetchLatest(context.Background(), "gone", entities.SelectionOptions{})

		// then
		require.NoError(t, err)
		assert.True(t, info.IsEmpty())
		assert.Equal(t, "0.0.0", info.Version.String())
		assert.Empty(t, info.CrateName)
		assert.Empty(t, info.LastUpdated)
	})

	t.Run("should report a network error for a non-success status", func(t *testing.T) {
		t.Parallel()

		// given
		_, cfg := newRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		repo := cratesio.NewRegistryRepository(cfg)

		// when
		_, err := repo.FetchLatest(context.Background(), "missing", entities.SelectionOptions{})

		// then
		require.Error(t, err)
		assert.True(t, entities.IsFetchKind(err, entities.NetworkError))
	})

	t.Run("should report a network error when the registry is unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		server, cfg := newRepository(t, func(_ http.ResponseWriter, _ *http.Request) {})
		server.Close()
		repo := cratesio.NewRegistryRepository(cfg)

		// when
		_, err := repo.FetchLatest(context.Background(), "serde", entities.SelectionOptions{})

		// then
		require.Error(t, err)
		assert.True(t, entities.IsFetchKind(err, entities.NetworkError))
	})

	t.Run("should share one request between concurrent callers of the same crate", func(t *testing.T) {
		t.Parallel()

		// given
		var hits atomic.Int32
		release := make(chan struct{})
		_, cfg := newRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			<-release
			_, _ = w.Write([]byte(regexVersions))
		})
		repo := cratesio.NewRegistryRepository(cfg)

		// when
		results := make(chan error, 2)
		for range 2 {
			go func() {
				_, err := repo.FetchLatest(context.Background(), "regex", entities.SelectionOptions{})
				results <- err
			}()
		}
		time.Sleep(100 * time.Millisecond)
		close(release)

		// then
		require.NoError(t, <-results)
		require.NoError(t, <-results)
		assert.Equal(t, int32(1), hits.Load())
	})
}

func TestParseVersions(t *testing.T) {
	t.Parallel()

	t.Run("should report an encoding error for invalid UTF-8", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte{'{', 0xff, 0xfe, '}'}

		// when
		_, err := cratesio.ParseVersions("serde", body, entities.SelectionOptions{})

		// then
		require.Error(t, err)
		assert.True(t, entities.IsFetchKind(err, entities.EncodingError))
	})

	t.Run("should report a parse error for a malformed document", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte(`{"versions": [`)

		// when
		_, err := cratesio.ParseVersions("serde", body, entities.SelectionOptions{})

		// then
		require.Error(t, err)
		assert.True(t, entities.IsFetchKind(err, entities.ParseError))
	})

	t.Run("should report a version parse error for a malformed version number", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte(`{"versions": [{"crate": "serde", "num": "one.two", "yanked": false}]}`)

		// when
		_, err := cratesio.ParseVersions("serde", body, entities.SelectionOptions{})

		// then
		require.Error(t, err)
		assert.True(t, entities.IsFetchKind(err, entities.ParseError))
		var versionErr *entities.VersionParseError
		require.ErrorAs(t, err, &versionErr)
		assert.Equal(t, "one.two", versionErr.Version)
	})

	t.Run("should ignore a malformed version that was yanked", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte(`{"versions": [
			{"crate": "serde", "num": "garbage", "yanked": true},
			{"crate": "serde", "num": "1.0.0", "yanked": false, "updated_at": "2017-04-20T00:00:00+00:00"}
		]}`)

		// when
		info, err := cratesio.ParseVersions("serde", body, entities.SelectionOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", info.Version.String())
	})

	t.Run("should select a pre-release when pre-releases are not skipped", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte(`{"versions": [
			{"crate": "tokio", "num": "1.0.0-alpha.1", "yanked": false},
			{"crate": "tokio", "num": "0.3.7", "yanked": false}
		]}`)

		// when
		info, err := cratesio.ParseVersions("tokio", body, entities.SelectionOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.0-alpha.1", info.Version.String())
	})

	t.Run("should skip pre-releases when asked to", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte(`{"versions": [
			{"crate": "tokio", "num": "1.0.0-alpha.1", "yanked": false},
			{"crate": "tokio", "num": "0.3.7", "yanked": false}
		]}`)

		// when
		info, err := cratesio.ParseVersions("tokio", body, entities.SelectionOptions{SkipPrereleases: true})

		// then
		require.NoError(t, err)
		assert.Equal(t, "0.3.7", info.Version.String())
	})

	t.Run("should return the empty default for an empty version list", func(t *testing.T) {
		t.Parallel()

		// given
		body := []byte(`{"versions": []}`)

		// when
		info, err := cratesio.ParseVersions("empty", body, entities.SelectionOptions{})

		// then
		require.NoError(t, err)
		assert.True(t, info.IsEmpty())
	})
}

func TestTruncateTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "2020-08-01T12:34:56.789012+00:00", expected: "2020-08-01T12:34:56"},
		{input: "2020-08-01T12:34:56+00:00", expected: "2020-08-01T12:34:56+00:00"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run("should truncate "+tt.input, func(t *testing.T) {
			t.Parallel()

			// when
			result := cratesio.TruncateTimestamp(tt.input)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}
