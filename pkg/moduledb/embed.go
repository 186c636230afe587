package moduledb

import (
	"embed"
	"io/fs"
)

//go:embed db/*.yaml
var embeddedDB embed.FS

// EmbeddedFS returns the bundled parameter tables. Callers may pass this
// filesystem to LoadFS to rebuild the default database, or walk it to list
// the raw files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDB, "db")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
