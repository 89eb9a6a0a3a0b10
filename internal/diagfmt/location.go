package diagfmt

import (
	"nkl/internal/source"
)

// fileOf returns the file a span points into, or nil for spans that do not
// belong to fs (e.g. I/O errors reported before the file was loaded).
func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}

func displayPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode.String(), baseDir)
}
