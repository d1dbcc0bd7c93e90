package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// SourceExt is the file extension of source files the server analyzes.
const SourceExt = ".t"

func UriToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return ""
	}
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	pth, err := url.PathUnescape(u.Path)
	if err != nil {
		return ""
	}
	return filepath.FromSlash(pth)
}

func PathToURI(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}

// IsSourceURI reports whether uri names a source file.
func IsSourceURI(uri string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSuffix(uri, "/")), SourceExt)
}
