// Package content holds the authored diagram documents, the landing page
// grouping table and the static assets served next to the pages.
package content

import (
	"embed"
	"io/fs"
)

const (
	// DiagramsDir holds one YAML document per architecture.
	DiagramsDir = "diagrams"
	// CatalogFile is the landing page grouping table.
	CatalogFile = "catalog.yaml"
	// AssetsDir holds static files served under /assets/.
	AssetsDir = "assets"
	// FaviconFile is the site icon inside AssetsDir.
	FaviconFile = "favicon.svg"
)

//go:embed diagrams/*.yaml catalog.yaml assets
var files embed.FS

// FS returns the content compiled into the binary.
func FS() fs.FS {
	return files
}

// Assets returns the static asset tree of fsys rooted at AssetsDir.
func Assets(fsys fs.FS) (fs.FS, error) {
	return fs.Sub(fsys, AssetsDir)
}
