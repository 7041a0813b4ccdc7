package dataset

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kapu/senate-directory-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleDocument = `{"meta":{"total_count":2},"objects":[{"party":"Democrat"},{"party":"Republican"}]}`

func TestParse(t *testing.T) {
	ds, err := Parse([]byte(sampleDocument), "inline")
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "Republican", ds.Records[1].Party())
}

func TestParseNumericAndNestedValues(t *testing.T) {
	body := `{"meta":{"limit":100,"offset":0,"total_count":1.5e2},"objects":[
		{"party":"Democrat","person":{"name":"Sen. A B","link":"https://example.com/members/400013"},"extra":{"office":null}},
		7
	]}`

	ds, err := Parse([]byte(body), "inline")
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)
	assert.True(t, ds.Records[0].IsObject())
	assert.False(t, ds.Records[1].IsObject())
}

func TestParseEmptyObjects(t *testing.T) {
	ds, err := Parse([]byte(`{"objects":[]}`), "inline")
	require.NoError(t, err)
	assert.Empty(t, ds.Records)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `not json`},
		{"truncated", `{"objects":[{"party":"Democrat"}`},
		{"objects not array", `{"objects": 3}`},
		{"missing objects", `{"meta":{}}`},
		{"top-level array", `[{"party":"Democrat"}]`},
		{"empty body", ``},
		{"trailing data", `{"objects":[]} {"objects":[]}`},
		{"meta wrong type", `{"meta": 3, "objects": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body), "inline")
			require.Error(t, err)

			var parseErr *errors.ParsingError
			assert.True(t, stderrors.As(err, &parseErr), "got %T", err)
			assert.Equal(t, errors.CodeParsing, parseErr.Code)
		})
	}
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.Client(), srv.URL+"/senators.json", time.Second, zap.NewNop())
	body, err := src.Fetch(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, sampleDocument, string(body))
	assert.Equal(t, srv.URL+"/senators.json", src.Name())
}

func TestHTTPSourceNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.Client(), srv.URL, time.Second, zap.NewNop()).Fetch(context.Background())

	var netErr *errors.NetworkError
	require.True(t, stderrors.As(err, &netErr), "got %T", err)
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	assert.Contains(t, netErr.Error(), "500")
}

func TestHTTPSourceTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPSource(srv.Client(), srv.URL, 50*time.Millisecond, zap.NewNop()).Fetch(context.Background())

	var netErr *errors.NetworkError
	require.True(t, stderrors.As(err, &netErr), "got %T", err)
	assert.Equal(t, http.StatusGatewayTimeout, netErr.StatusCode)
}

func TestHTTPSourceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(nil, url, time.Second, zap.NewNop()).Fetch(context.Background())

	var netErr *errors.NetworkError
	assert.True(t, stderrors.As(err, &netErr), "got %T", err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "senators.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	body, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, sampleDocument, string(body))

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	var netErr *errors.NetworkError
	assert.True(t, stderrors.As(err, &netErr), "got %T", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileSource(path).Fetch(ctx)
	assert.Error(t, err)
}

func TestBundledSource(t *testing.T) {
	src := NewBundledSource()
	assert.Equal(t, BundledSourceName, src.Name())

	body, err := src.Fetch(context.Background())
	require.NoError(t, err)

	doc, err := Parse(body, src.Name())
	require.NoError(t, err)
	assert.Len(t, doc.Records, 7)

	// 호출자가 버퍼를 수정해도 내장 데이터는 그대로
	body[0] = 'x'
	again, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again[0])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx)
	var netErr *errors.NetworkError
	assert.True(t, stderrors.As(err, &netErr), "got %T", err)
}
