package dataset

import (
	"bytes"
	"context"
	_ "embed"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/kapu/senate-directory-go/pkg/errors"
	"go.uber.org/zap"
)

// Source produces the raw dataset document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// HTTPSource fetches the dataset with a single GET. It never retries;
// every failure is reported to the caller.
type HTTPSource struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
	logger     *zap.Logger
}

func NewHTTPSource(httpClient *http.Client, url string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if timeout <= 0 {
		timeout = constants.DatasetConfig.FetchTimeout
	}
	return &HTTPSource{
		httpClient: httpClient,
		url:        url,
		timeout:    timeout,
		logger:     logger,
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.NewNetworkError("Invalid dataset request", s.url, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewNetworkError("Dataset request timed out", s.url, http.StatusGatewayTimeout, err)
		}
		return nil, errors.NewNetworkError("Error with network response", s.url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.NewNetworkError(
			fmt.Sprintf("Error with network response: %s", resp.Status),
			s.url, resp.StatusCode, nil,
		)
	}

	body, err := readLimited(resp.Body, s.url)
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewNetworkError("Dataset request timed out", s.url, http.StatusGatewayTimeout, err)
		}
		return nil, err
	}

	s.logger.Debug("Dataset fetched",
		zap.String("url", s.url),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return body, nil
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewNetworkError("Dataset read cancelled", s.path, 0, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.NewNetworkError("Error reading dataset file", s.path, 0, err)
	}
	defer f.Close()

	return readLimited(f, s.path)
}

func readLimited(r io.Reader, source string) ([]byte, error) {
	limit := constants.DatasetConfig.MaxBodyBytes
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.NewNetworkError("Error reading dataset body", source, 0, err)
	}
	if int64(len(body)) > limit {
		return nil, errors.NewParsingError(fmt.Sprintf("Dataset exceeds %d bytes", limit), source, nil)
	}
	return body, nil
}

//go:embed senators.json
var bundledDataset []byte

// BundledSourceName identifies the dataset compiled into the binary.
const BundledSourceName = "bundled:senators.json"

// BundledSource serves the sample dataset shipped with the binary. It is the
// source when neither DATASET_URL nor DATASET_FILE is configured.
type BundledSource struct{}

func NewBundledSource() *BundledSource {
	return &BundledSource{}
}

func (s *BundledSource) Name() string {
	return BundledSourceName
}

func (s *BundledSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewNetworkError("Dataset read cancelled", BundledSourceName, 0, err)
	}
	return bytes.Clone(bundledDataset), nil
}
