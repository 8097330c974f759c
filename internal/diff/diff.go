// Package diff shows what a save would change on disk.
package diff

import (
	"fmt"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns a unified diff from before to after, labelled with the
// given names. Identical inputs produce an empty string.
func Unified(fromName, toName, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(fromName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, before, edits))
}

// Unsaved compares the file at path with current, the bytes a save would
// write. A missing file counts as empty.
func Unsaved(path string, current []byte) (string, error) {
	onDisk, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	return Unified(path, path+" (unsaved)", normalize(string(onDisk)), normalize(string(current))), nil
}

// normalize makes sure the last line ends in a newline so a missing trailing
// newline does not show up as a change.
func normalize(s string) string {
	if s != "" && s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}
