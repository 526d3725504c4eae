// Package mimetypes guesses content types from file names for stores that
// do not report one.
package mimetypes

import (
	"mime"
	"path"
	"strings"
)

// Fallback is returned when nothing better is known.
const Fallback = "application/octet-stream"

// extMIMETypes covers types missing from Go's registry or resolved wrongly
// by it (".ts" maps to video/mp2t on many systems).
var extMIMETypes = map[string]string{
	".txt": "text/plain", ".text": "text/plain", ".log": "text/plain",
	".md": "text/markdown", ".markdown": "text/markdown",
	".html": "text/html", ".htm": "text/html",
	".csv": "text/csv", ".json": "application/json",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".go":   "text/x-go", ".py": "text/x-python", ".rs": "text/x-rust",
	".ts": "text/typescript", ".tsx": "text/typescript-jsx", ".jsx": "text/javascript-jsx",
	".yaml": "text/yaml", ".yml": "text/yaml", ".toml": "text/toml",
	".sh": "text/x-shellscript", ".bash": "text/x-shellscript",
	".sql": "text/x-sql", ".rb": "text/x-ruby", ".java": "text/x-java",
}

// ByName returns the MIME type for a file name, without parameters.
func ByName(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return Fallback
	}
	if t, ok := extMIMETypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if idx := strings.Index(t, ";"); idx != -1 {
			t = strings.TrimSpace(t[:idx])
		}
		return t
	}
	return Fallback
}

// binaryExts are formats no extractor reads.
var binaryExts = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".7z": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".webp": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".bin": true, ".dat": true, ".db": true, ".sqlite": true,
	".pyc": true, ".class": true, ".o": true, ".a": true,
}

// IsBinary reports whether the name has a known binary extension.
func IsBinary(name string) bool {
	return binaryExts[strings.ToLower(path.Ext(name))]
}
