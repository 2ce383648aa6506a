package storage

import (
	"path/filepath"
	"strings"
)

// extensionTypes maps file extensions to MIME types for the formats the
// export pipeline produces.
var extensionTypes = map[string]string{
	".csv":  "text/csv; charset=utf-8",
	".html": "text/html; charset=utf-8",
	".json": "application/json",
	".txt":  "text/plain; charset=utf-8",
}

// DetectContentType resolves the MIME type for an object. An explicit
// content type wins; otherwise the key's file extension decides.
func DetectContentType(explicit, key string) string {
	if explicit != "" {
		return explicit
	}
	ext := strings.ToLower(filepath.Ext(key))
	if ct, ok := extensionTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
