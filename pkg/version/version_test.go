package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"1.2.0", "1.1.9", true},
		{"1.10.0", "1.9.0", true},
		{"2.0", "1.9.9", true},
		{"1.2.3", "1.2.3", false},
		{"1.2.3", "1.2.3-dirty", false},
		{"1.2.3.1", "1.2.3", true},
		{"1.2.2", "1.2.3", false},
		{"v1.3.0", "1.2.9", true},
	}
	for _, tt := range tests {
		t.Run(tt.latest+">"+tt.current, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNewer(tt.latest, tt.current))
		})
	}
}

func TestLatestVersion(t *testing.T) {
	t.Run("strips v prefix", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"v1.4.2","name":"Sales Report 1.4.2"}`))
		}))
		defer srv.Close()

		got, err := LatestVersion(context.Background(), srv.Client(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "1.4.2", got)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := LatestVersion(context.Background(), srv.Client(), srv.URL)

		assert.ErrorContains(t, err, "unexpected status 403")
	})

	t.Run("missing tag", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := LatestVersion(context.Background(), srv.Client(), srv.URL)

		assert.Error(t, err)
	})
}

func TestFormatVersion(t *testing.T) {
	prevVersion, prevCommit, prevBuild := Version, Commit, BuildTime
	t.Cleanup(func() { Version, Commit, BuildTime = prevVersion, prevCommit, prevBuild })

	Version, Commit, BuildTime = "1.0.0", "", ""
	assert.Equal(t, "1.0.0 (development)", FormatVersion())

	Commit, BuildTime = "abc1234", "2024-06-01T12:00:00Z"
	assert.Equal(t, "1.0.0 (commit: abc1234, built at: 2024-06-01T12:00:00Z)", FormatVersion())

	BuildTime = ""
	assert.Equal(t, "1.0.0 (commit: abc1234)", FormatVersion())
}
