package modelsync

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Source identifies the download strategy for a model entry.
type Source string

const (
	SourceHuggingFace Source = "huggingface"
	SourceCivitai     Source = "civitai"
	SourceURL         Source = "url"
)

// Entry is one parsed `source:identifier[:filename]` model list line.
type Entry struct {
	Source Source

	// Identifier depends on the source: hub repo path plus file for
	// huggingface, numeric model id for civitai, the full URL otherwise.
	Identifier string

	// Filename is the resolved target file name in the models directory.
	Filename string
}

// UnknownSourceError marks an entry whose source tag is not recognized.
// Such entries are skipped, never fatal.
type UnknownSourceError struct {
	Tag string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown model source %q", e.Tag)
}

// ParseEntry parses a model list line.
//
// The original list format splits on ':', which cuts URLs apart at their
// scheme. Entries tagged http/https therefore reattach the tag as the URL
// scheme before resolving the optional trailing filename.
func ParseEntry(line string) (Entry, error) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return Entry{}, fmt.Errorf("malformed model entry %q, want source:identifier[:filename]", line)
	}

	tag := strings.ToLower(strings.TrimSpace(line[:idx]))
	rest := strings.TrimSpace(line[idx+1:])
	if rest == "" {
		return Entry{}, fmt.Errorf("malformed model entry %q, missing identifier", line)
	}

	switch tag {
	case "hf", "huggingface":
		identifier, filename := splitSimpleFilename(rest)
		if filename == "" {
			filename = path.Base(identifier)
		}
		return Entry{Source: SourceHuggingFace, Identifier: identifier, Filename: filename}, nil

	case "civitai":
		identifier, filename := splitSimpleFilename(rest)
		if !isNumeric(identifier) {
			return Entry{}, fmt.Errorf("malformed civitai entry %q, model id must be numeric", line)
		}
		if filename == "" {
			filename = identifier
		}
		return Entry{Source: SourceCivitai, Identifier: identifier, Filename: filename}, nil

	case "url":
		rawURL, filename := splitTrailingFilename(rest)
		if filename == "" {
			filename = urlBaseName(rawURL)
		}
		return Entry{Source: SourceURL, Identifier: rawURL, Filename: filename}, nil

	case "http", "https":
		// The list delimiter cut the URL at its scheme; put it back.
		urlPart, filename := splitTrailingFilename(rest)
		rawURL := tag + ":" + urlPart
		if filename == "" {
			filename = urlBaseName(rawURL)
		}
		return Entry{Source: SourceURL, Identifier: rawURL, Filename: filename}, nil

	default:
		return Entry{}, &UnknownSourceError{Tag: tag}
	}
}

// splitSimpleFilename splits off an optional `:filename` suffix for sources
// whose identifiers cannot contain colons.
func splitSimpleFilename(rest string) (identifier, filename string) {
	parts := strings.SplitN(rest, ":", 2)
	identifier = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		filename = strings.TrimSpace(parts[1])
	}
	return identifier, filename
}

// splitTrailingFilename splits an optional trailing `:filename` off a URL.
// A candidate containing '/' or '?' belongs to the URL itself (ports, paths
// and queries survive). A dangling ':' left over from the cut scheme form
// is dropped.
func splitTrailingFilename(rest string) (urlPart, filename string) {
	urlPart = rest

	idx := strings.LastIndex(rest, ":")
	if idx >= 0 {
		candidate := rest[idx+1:]
		if candidate != "" && !strings.ContainsAny(candidate, "/?") {
			urlPart = rest[:idx]
			filename = candidate
		}
	}

	urlPart = strings.TrimSuffix(urlPart, ":")
	return urlPart, filename
}

// urlBaseName derives the default filename from a URL: the base of its path
// with any query stripped.
func urlBaseName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}

	base := path.Base(rawURL)
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	return base
}

// splitHubIdentifier splits a hub identifier `owner/repo[/nested/path]` into
// the repo id and the file path inside the repository.
func splitHubIdentifier(identifier string) (repoID, remotePath string, err error) {
	parts := strings.SplitN(identifier, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("malformed hub identifier %q, want owner/repo/path", identifier)
	}
	return parts[0] + "/" + parts[1], parts[2], nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
