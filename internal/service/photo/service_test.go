package photo

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/kapu/senate-directory-go/internal/util"
	"github.com/kapu/senate-directory-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestURL(t *testing.T) {
	svc := NewService(nil, "https://img.example.com/photos/", zap.NewNop())
	assert.Equal(t, "https://img.example.com/photos/400013-200px.jpeg", svc.URL("400013"))
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/400013-200px.jpeg", r.URL.Path)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	photo, err := NewService(srv.Client(), srv.URL, zap.NewNop()).Fetch(context.Background(), "400013")
	require.NoError(t, err)
	assert.False(t, photo.Placeholder)
	assert.Equal(t, "image/jpeg", photo.ContentType)
	assert.Equal(t, "jpeg-bytes", string(photo.Body))
}

func TestFetchNotFoundServesPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := NewService(srv.Client(), srv.URL, zap.NewNop())
	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold+1; i++ {
		photo, err := svc.Fetch(context.Background(), "400013")
		require.NoError(t, err)
		assert.True(t, photo.Placeholder)
		assert.Equal(t, "image/svg+xml", photo.ContentType)
	}
	assert.Equal(t, util.CircuitStateClosed, svc.Breaker().State)
}

func TestFetchNotFoundClearsFailureStreak(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 앞의 요청들은 500, 이후는 404
		if hits.Add(1) < int32(constants.CircuitBreakerConfig.FailureThreshold) {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	svc := NewService(srv.Client(), srv.URL, zap.NewNop())
	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold-1; i++ {
		_, err := svc.Fetch(context.Background(), "400013")
		require.NoError(t, err)
	}
	require.Equal(t, constants.CircuitBreakerConfig.FailureThreshold-1, svc.Breaker().FailureCount)

	photo, err := svc.Fetch(context.Background(), "400013")
	require.NoError(t, err)
	assert.True(t, photo.Placeholder)

	status := svc.Breaker()
	assert.Equal(t, util.CircuitStateClosed, status.State)
	assert.Zero(t, status.FailureCount)
}

func TestFetchServerErrorsOpenCircuit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewService(srv.Client(), srv.URL, zap.NewNop())
	threshold := constants.CircuitBreakerConfig.FailureThreshold
	for i := 0; i < threshold; i++ {
		photo, err := svc.Fetch(context.Background(), "400013")
		require.NoError(t, err)
		assert.True(t, photo.Placeholder)
	}
	assert.Equal(t, util.CircuitStateOpen, svc.Breaker().State)

	photo, err := svc.Fetch(context.Background(), "400013")
	require.NoError(t, err)
	assert.True(t, photo.Placeholder)
	assert.EqualValues(t, threshold, hits.Load(), "open circuit must not reach the host")
}

func TestFetchRejectsMalformedID(t *testing.T) {
	svc := NewService(nil, "http://unused.invalid", zap.NewNop())

	for _, id := range []string{"", "abc", "12a", "../etc"} {
		_, err := svc.Fetch(context.Background(), id)
		var validationErr *errors.ValidationError
		assert.True(t, stderrors.As(err, &validationErr), "id %q: got %T", id, err)
	}
}
