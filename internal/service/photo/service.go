package photo

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/kapu/senate-directory-go/internal/util"
	"github.com/kapu/senate-directory-go/pkg/errors"
	"go.uber.org/zap"
)

//go:embed placeholder.svg
var placeholderSVG []byte

const placeholderContentType = "image/svg+xml"

// Photo is an image ready to be written to a response.
type Photo struct {
	Body        []byte
	ContentType string
	Placeholder bool
}

// Placeholder returns the embedded fallback image.
func Placeholder() Photo {
	return Photo{Body: placeholderSVG, ContentType: placeholderContentType, Placeholder: true}
}

// Service fetches legislator photos from the image host on demand.
type Service struct {
	httpClient *http.Client
	baseURL    string
	breaker    *util.CircuitBreaker
	logger     *zap.Logger
}

func NewService(httpClient *http.Client, baseURL string, logger *zap.Logger) *Service {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Service{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		breaker: util.NewCircuitBreaker("photo",
			constants.CircuitBreakerConfig.FailureThreshold,
			constants.CircuitBreakerConfig.ResetTimeout,
			logger,
		),
		logger: logger,
	}
}

// URL is the image host address for imageID.
func (s *Service) URL(imageID string) string {
	return fmt.Sprintf("%s/%s-200px.jpeg", s.baseURL, imageID)
}

// Breaker exposes the upstream circuit state for health reporting.
func (s *Service) Breaker() util.CircuitBreakerStatus {
	return s.breaker.Status()
}

// Fetch returns the photo for imageID. Upstream failures are not errors:
// the placeholder is returned instead. Only a malformed id is rejected.
func (s *Service) Fetch(ctx context.Context, imageID string) (Photo, error) {
	if !isImageID(imageID) {
		return Photo{}, errors.NewValidationError("image id must be digits", "imageID", imageID)
	}

	if !s.breaker.CanExecute() {
		s.logger.Debug("Photo host circuit open, serving placeholder", zap.String("image_id", imageID))
		return Placeholder(), nil
	}

	photo, err := s.fetch(ctx, imageID)
	if err != nil {
		s.logger.Warn("Photo fetch failed, serving placeholder",
			zap.String("image_id", imageID),
			zap.Error(err),
		)
		return Placeholder(), nil
	}
	return photo, nil
}

func (s *Service) fetch(ctx context.Context, imageID string) (Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.PhotoConfig.FetchTimeout)
	defer cancel()

	// CanExecute 이후 모든 경로는 결과를 기록해야 half-open 시험 요청이 풀린다
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(imageID), nil)
	if err != nil {
		s.breaker.RecordFailure()
		return Photo{}, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.breaker.RecordFailure()
		return Photo{}, err
	}
	defer resp.Body.Close()

	// 없는 사진은 호스트 장애가 아님: 호스트가 응답했으니 성공으로 기록
	if resp.StatusCode == http.StatusNotFound {
		s.breaker.RecordSuccess()
		return Photo{}, fmt.Errorf("photo %s not found", imageID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.breaker.RecordFailure()
		return Photo{}, fmt.Errorf("photo host returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.PhotoConfig.MaxBytes+1))
	if err != nil {
		s.breaker.RecordFailure()
		return Photo{}, fmt.Errorf("failed to read photo: %w", err)
	}
	if int64(len(body)) > constants.PhotoConfig.MaxBytes {
		s.breaker.RecordSuccess()
		return Photo{}, fmt.Errorf("photo %s exceeds %d bytes", imageID, constants.PhotoConfig.MaxBytes)
	}

	s.breaker.RecordSuccess()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return Photo{Body: body, ContentType: contentType}, nil
}

func isImageID(id string) bool {
	digits, ok := util.FirstDigitRun(id)
	return ok && digits == id
}
