package pvsim

import (
	"io/fs"

	"github.com/goliatone/go-pvsim/pkg/moduledb"
	"github.com/goliatone/go-pvsim/pkg/report"
)

// DatabaseFS exposes the bundled hardware tables (committed under
// pkg/moduledb/db) so applications can inspect or extend the YAML sources
// the default database loads from.
func DatabaseFS() fs.FS {
	return moduledb.EmbeddedFS()
}

// ReportTemplatesFS exposes the built-in report templates so callers can
// reuse or restyle them without importing the report package directly.
func ReportTemplatesFS() fs.FS {
	return report.TemplatesFS()
}
