package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var embedded embed.FS

// Static returns the dashboard assets. A non-empty dir is served from disk
// instead of the embedded copy.
func Static(dir string) http.FileSystem {
	if dir != "" {
		return http.Dir(dir)
	}
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
