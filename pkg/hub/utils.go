package hub

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ResolveURL builds the download URL for a file inside a repository:
// {endpoint}/{repo_id}/resolve/{revision}/{path}.
func ResolveURL(endpoint, repoID, revision, remotePath string) (string, error) {
	if repoID == "" {
		return "", fmt.Errorf("repo_id cannot be empty")
	}
	if remotePath == "" {
		return "", fmt.Errorf("remote path cannot be empty")
	}
	if strings.Contains(remotePath, "..") {
		return "", fmt.Errorf("invalid remote path: path traversal detected in %s", remotePath)
	}
	if revision == "" {
		revision = DefaultRevision
	}

	escapedPath := escapeFilePath(remotePath)
	return fmt.Sprintf(resolveURLTemplate, strings.TrimRight(endpoint, "/"), repoID, url.PathEscape(revision), escapedPath), nil
}

// escapeFilePath escapes each path segment while preserving the separators.
func escapeFilePath(remotePath string) string {
	segments := strings.Split(remotePath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// BuildHeaders constructs the request headers, attaching the bearer token
// when one is configured.
func BuildHeaders(token, userAgent string) map[string]string {
	headers := make(map[string]string)
	if userAgent != "" {
		headers[UserAgentHeader] = userAgent
	}
	if token != "" {
		headers[AuthorizationHeader] = "Bearer " + token
	}
	return headers
}

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// FileExists reports whether the named path exists and is a regular file.
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.Mode().IsRegular()
}
