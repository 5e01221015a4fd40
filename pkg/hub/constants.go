package hub

import (
	"os"
	"time"
)

// Defaults following huggingface_hub conventions.
const (
	DefaultEndpoint = "https://huggingface.co"
	DefaultRevision = "main"

	DefaultUserAgent = "comfykit-provisioner/1.0"

	DefaultRequestTimeout  = 10 * time.Second
	DefaultDownloadTimeout = 30 * time.Minute

	DefaultMaxRetries    = 5
	DefaultRetryInterval = 10 * time.Second

	// Headers
	UserAgentHeader     = "User-Agent"
	AuthorizationHeader = "Authorization"

	// {endpoint}/{repo_id}/resolve/{revision}/{path}
	resolveURLTemplate = "%s/%s/resolve/%s/%s"

	tmpSuffix = ".tmp"
)

// GetHfToken returns the token from the conventional environment variables.
func GetHfToken() string {
	if token := os.Getenv("HF_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("HUGGING_FACE_HUB_TOKEN")
}
