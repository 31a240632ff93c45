package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"index-observer/src/helpers"
	"index-observer/src/logger"
)

// DefaultUserAgent identifies dataset downloads.
const DefaultUserAgent = "index-observer/1.0"

// MaxBodyBytes caps a single download.
const MaxBodyBytes = 256 << 20

// HTTPNetworkManager fetches remote datasets. It makes one attempt per call;
// retries belong to the caller's ErrorHandler.
type HTTPNetworkManager struct {
	Client    *http.Client
	Logger    *logger.Logger
	UserAgent string
}

// -----------------------------------------------------------------------------

func NewHTTPNetworkManager(timeout time.Duration, log *logger.Logger) *HTTPNetworkManager {
	return &HTTPNetworkManager{
		Client:    &http.Client{Timeout: timeout},
		Logger:    log,
		UserAgent: DefaultUserAgent,
	}
}

// -----------------------------------------------------------------------------

// IsRemote reports whether path is an http(s) URL rather than a local file.
func IsRemote(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// -----------------------------------------------------------------------------

// Get performs a GET request and returns the body of a 200 response.
func (nm *HTTPNetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	reqURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, helpers.NewValidationError("invalid URL "+urlStr, err)
	}

	q := reqURL.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", nm.UserAgent)
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	start := time.Now()
	resp, err := nm.Client.Do(req)
	if err != nil {
		return nil, helpers.NewDataSourceError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("bad status %d from %s", resp.StatusCode, reqURL.Host), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, helpers.NewDataSourceError("failed to read response body", err)
	}

	nm.Logger.Debug("Fetched %d bytes from %s in %v", len(body), reqURL.Host, time.Since(start))
	return body, nil
}
