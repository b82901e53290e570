package httpapi

import "strings"

// normalizeBasePath reduces a configured prefix to "/name" form; "" means the
// API is served at the root.
func normalizeBasePath(value string) string {
	path := strings.TrimSpace(value)
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = strings.TrimRight(path, "/")
	if path == "/" {
		return ""
	}
	return path
}

// buildBaseHref joins the public base URL and path prefix into the externally
// reachable root of this API, always with a trailing slash.
func buildBaseHref(baseURL, basePath string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	path := normalizeBasePath(basePath)
	if base == "" && path == "" {
		return ""
	}
	if base == "" {
		return ensureTrailingSlash(path)
	}
	return ensureTrailingSlash(base + path)
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
