// internal/adapters/out/gcs/helper_repository_gcs.go
package gcs

import (
	"net/url"
	"strings"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

// sanitizePathSegment normalizes a path segment for GCS object paths.
// - removes separators
// - trims dots/spaces
func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.Trim(s, ". ")
	return s
}

// sanitizeObjectPath は "a/b/c" の各セグメントを正規化し、空セグメントを落とす。
func sanitizeObjectPath(p string) string {
	parts := strings.Split(strings.ReplaceAll(p, "\\", "/"), "/")
	out := make([]string, 0, len(parts))
	for _, seg := range parts {
		if s := sanitizePathSegment(seg); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}

// publicURL builds a public object URL.
// 各セグメントは URL エスケープする（バケット名はそのまま）。
func publicURL(baseURL, bucket, objectPath string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultPublicBaseURL
	}

	segs := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return base + "/" + strings.TrimSpace(bucket) + "/" + strings.Join(segs, "/")
}
