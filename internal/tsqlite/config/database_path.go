package config

import (
	"errors"
	"net/url"
	"strings"
)

// parseDatabasePath returns the filesystem path for the --db value. It
// accepts a plain path, ":memory:" or a file: URL such as
// file:///var/lib/app.db. Query parameters are not supported.
func parseDatabasePath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("missing database path, use --db or TSQLITE_DB")
	}

	if !strings.HasPrefix(raw, "file:") {
		return raw, nil
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsedURL.RawQuery != "" {
		return "", errors.New("database URL query parameters are not supported")
	}
	if parsedURL.Host != "" && parsedURL.Host != "localhost" {
		return "", errors.New("database URL must not have a remote host")
	}

	path := parsedURL.Path
	if path == "" {
		path = parsedURL.Opaque
	}
	if path == "" {
		return "", errors.New("database URL has no path")
	}
	return path, nil
}
