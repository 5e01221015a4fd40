package hub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

// Client downloads files from the configured model hub.
type Client struct {
	config *Config
}

// NewClient creates a hub client with the provided configuration.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hub config: %w", err)
	}

	return &Client{config: config}, nil
}

// Config returns the client configuration.
func (c *Client) Config() *Config {
	return c.config
}

// HasToken reports whether the client authenticates its requests.
func (c *Client) HasToken() bool {
	return c.config.Token != ""
}

// FileDownload fetches a single file from repoID and writes it into destDir
// under the remote file's base name. It downloads to a temporary file first
// and renames it into place, so an interrupted run never leaves a partial
// file at the final path. The returned path is the downloaded file.
func (c *Client) FileDownload(ctx context.Context, repoID, remotePath, destDir string) (string, error) {
	fileURL, err := ResolveURL(c.config.Endpoint, repoID, c.config.Revision, remotePath)
	if err != nil {
		return "", err
	}

	if err := EnsureDir(destDir); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	targetPath := filepath.Join(destDir, path.Base(remotePath))
	tmpPath := targetPath + tmpSuffix

	if c.config.Logger != nil {
		c.config.Logger.
			WithField("repo", repoID).
			WithField("file", remotePath).
			Info("Downloading from hub")
	}

	if err := c.downloadWithRetry(ctx, fileURL, repoID, remotePath, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, targetPath); err != nil {
		return "", fmt.Errorf("failed to move downloaded file into place: %w", err)
	}

	return targetPath, nil
}

// downloadWithRetry performs the GET with exponential backoff. Client errors
// (4xx) are terminal; network errors and 5xx responses are retried.
func (c *Client) downloadWithRetry(ctx context.Context, fileURL, repoID, remotePath, tmpPath string) error {
	var lastErr error
	interval := c.config.RetryInterval

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if c.config.Logger != nil {
				c.config.Logger.
					WithField("attempt", attempt).
					WithError(lastErr).
					Warn("Retrying hub download")
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
			interval *= 2
		}

		err := c.downloadOnce(ctx, fileURL, repoID, remotePath, tmpPath)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("hub download failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

func (c *Client) downloadOnce(ctx context.Context, fileURL, repoID, remotePath, tmpPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return &HubError{Message: "failed to build request", Cause: err}
	}
	for k, v := range BuildHeaders(c.config.Token, c.config.UserAgent) {
		req.Header.Set(k, v)
	}

	resp, err := newHTTPClientWithTimeout(c.config.DownloadTimeout).Do(req)
	if err != nil {
		return &HubError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return NewGatedRepoError(repoID)
	case resp.StatusCode == http.StatusNotFound:
		return NewEntryNotFoundError(repoID, remotePath, resp.StatusCode)
	case resp.StatusCode >= 400:
		return NewHTTPError(fmt.Sprintf("unexpected response for %s", fileURL), resp.StatusCode)
	}

	out, err := os.Create(tmpPath)
	if err != nil {
		return &HubError{Message: "failed to create temporary file", Cause: err}
	}

	_, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil {
		return &HubError{Message: "download interrupted", Cause: copyErr}
	}
	if closeErr != nil {
		return &HubError{Message: "failed to finalize temporary file", Cause: closeErr}
	}

	return nil
}

// isRetryable reports whether the download should be attempted again.
func isRetryable(err error) bool {
	switch e := err.(type) {
	case *GatedRepoError, *RepositoryNotFoundError, *EntryNotFoundError:
		return false
	case *HTTPError:
		return e.StatusCode >= 500
	default:
		return true
	}
}
