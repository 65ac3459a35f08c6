package splitter

import (
	"path/filepath"
	"strings"
	"time"
)

// resolveStub computes the prefix shared by all output filenames: an
// explicit -stub wins, then the input filename minus its final extension,
// then a timestamp when reading stdin.
func resolveStub(opts Opts) string {
	if opts.Stub != "" {
		return opts.Stub
	}
	if opts.Path != "" && opts.Path != "-" {
		return strings.TrimSuffix(opts.Path, filepath.Ext(opts.Path))
	}
	return timestampStub(time.Now())
}

// timestampStub renders now in ctime(3) layout with every space replaced
// by an underscore, e.g. Fri_Aug_28_13:04:05_2026.
func timestampStub(now time.Time) string {
	return strings.Replace(now.Format("Mon Jan _2 15:04:05 2006"), " ", "_", -1)
}

// displayPath names the input in diagnostics.
func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
