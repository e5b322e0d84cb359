// Package inputs — kind detection rules.
// Maps file extensions to the extractor that understands them.
package inputs

import (
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/plantpipe/core"
)

// KindAuto selects the kind from the file extension.
const KindAuto = "auto"

// htmlExtensions are treated as plant detail pages.
var htmlExtensions = map[string]bool{
	".html": true, ".htm": true, ".xhtml": true,
}

// IsHTML checks if a path names an HTML document.
func IsHTML(path string) bool {
	return htmlExtensions[strings.ToLower(filepath.Ext(path))]
}

// KindFor returns the document kind for path. An explicit kind wins;
// KindAuto (or empty) picks html for HTML extensions and text otherwise.
func KindFor(path string, kind string) core.Kind {
	if kind != "" && kind != KindAuto {
		return core.Kind(kind)
	}
	if IsHTML(path) {
		return core.KindHTML
	}
	return core.KindText
}
