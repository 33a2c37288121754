package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capnow/portfolio"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		fields Fields
		want   portfolio.ProgressState
	}{
		{
			name: "root counters",
			doc:  `{"current": 42000, "target": 150000}`,
			want: portfolio.ProgressState{Current: 42000, Target: 150000},
		},
		{
			name: "missing counters take defaults",
			doc:  `{}`,
			want: portfolio.ProgressState{Current: 0, Target: portfolio.DefaultTarget},
		},
		{
			name: "null and zero take defaults",
			doc:  `{"current": null, "target": 0}`,
			want: portfolio.ProgressState{Current: 0, Target: portfolio.DefaultTarget},
		},
		{
			name: "numeric strings",
			doc:  `{"current": " 12500 ", "target": "50000"}`,
			want: portfolio.ProgressState{Current: 12500, Target: 50000},
		},
		{
			name: "negative target is kept",
			doc:  `{"current": 5, "target": -1}`,
			want: portfolio.ProgressState{Current: 5, Target: -1},
		},
		{
			name:   "custom fields",
			doc:    `{"campaign": {"committed": 110000, "goal": 100000}}`,
			fields: Fields{Current: "$.campaign.committed", Target: "$.campaign.goal"},
			want:   portfolio.ProgressState{Current: 110000, Target: 100000},
		},
		{
			name:   "list answer keeps the first",
			doc:    `{"rounds": [{"committed": 7}, {"committed": 9}]}`,
			fields: Fields{Current: "$.rounds[*].committed", Target: "$.goal"},
			want:   portfolio.ProgressState{Current: 7, Target: portfolio.DefaultTarget},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := tc.fields
			if fields == (Fields{}) {
				fields = DefaultFields()
			}
			got, err := Parse([]byte(tc.doc), fields)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":       `{"current":`,
		"not a number":   `{"current": "lots"}`,
		"boolean":        `{"current": true}`,
		"infinite value": `{"current": "Inf"}`,
		"object":         `{"target": {"value": 1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), DefaultFields())
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte(`{"current": "lots"}`), DefaultFields())
	assert.True(t, errors.Is(err, portfolio.ErrInvalidInput))
}

func TestFeed_RefreshHTTP(t *testing.T) {
	var body atomic.Value
	body.Store(`{"current": 25000, "target": 100000}`)
	var status atomic.Int32
	status.Store(http.StatusOK)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(body.Load().(string)))
	}))
	defer srv.Close()

	f, err := New(srv.URL+"/progress.json", WithClient(srv.Client()))
	require.NoError(t, err)
	assert.Equal(t, portfolio.InitialProgress(), f.State())
	assert.True(t, f.LastUpdated().IsZero())

	require.NoError(t, f.Refresh(context.Background()))
	assert.Equal(t, portfolio.ProgressState{Current: 25000, Target: 100000}, f.State())
	assert.False(t, f.LastUpdated().IsZero())

	// a failing source keeps the last known good state
	status.Store(http.StatusInternalServerError)
	assert.Error(t, f.Refresh(context.Background()))
	assert.Equal(t, portfolio.ProgressState{Current: 25000, Target: 100000}, f.State())

	// so does a malformed document
	status.Store(http.StatusOK)
	body.Store(`<html>`)
	assert.Error(t, f.Run())
	assert.Equal(t, portfolio.ProgressState{Current: 25000, Target: 100000}, f.State())

	body.Store(`{"current": 150000, "target": 100000}`)
	require.NoError(t, f.Run())
	assert.Equal(t, 1.0, f.State().Fraction())
	assert.Equal(t, 1.5, f.State().Ratio())
}

func TestFeed_RefreshFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"current": 60000}`), 0644))

	f, err := New(file)
	require.NoError(t, err)
	assert.Equal(t, file, f.Source())
	assert.Equal(t, "progress-feed", f.Name())
	require.NoError(t, f.Refresh(context.Background()))
	assert.Equal(t, portfolio.ProgressState{Current: 60000, Target: portfolio.DefaultTarget}, f.State())

	missing, err := New(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	err = missing.Refresh(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, portfolio.InitialProgress(), missing.State())
}

func TestFeed_RefreshCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current": 1}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := New(srv.URL, WithClient(srv.Client()))
	require.NoError(t, err)
	assert.Error(t, f.Refresh(ctx))
	assert.Equal(t, portfolio.InitialProgress(), f.State())
}

func TestFields_Malformed(t *testing.T) {
	bad := Fields{Current: "$.campaign[", Target: "$.target"}
	assert.Error(t, bad.Validate())
	assert.NoError(t, DefaultFields().Validate())

	_, err := Parse([]byte(`{"campaign": {"committed": 42000}}`), bad)
	assert.Error(t, err, "a malformed path must not read as a zero counter")

	f, err := New("progress.json", WithFields(bad))
	assert.Error(t, err)
	assert.Nil(t, f)

	// a well formed path to an unknown key still reads as zero
	p, err := Parse([]byte(`{"target": 50000}`), Fields{Current: "$.campaign.committed", Target: "$.target"})
	require.NoError(t, err)
	assert.Equal(t, portfolio.ProgressState{Current: 0, Target: 50000}, p)
}
