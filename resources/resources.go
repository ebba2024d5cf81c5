// Package resources bulk-loads a watch's font and image assets from a JSON
// manifest, pushing each one over a dfu.Session. It generalizes the
// fonts/images upload ritual the original tooling hardcoded: the manifest
// itself lists obsolete paths to flag, and the parent directories to create
// are derived from its resource paths rather than baking "/fonts" and
// "/images" into the program.
package resources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
)

// Manifest describes a batch of files to push to a watch, plus paths that
// older manifests used to push but this one no longer does.
type Manifest struct {
	Resources     []Resource     `json:"resources"`
	ObsoleteFiles []ObsoleteFile `json:"obsolete_files"`
}

// Resource pairs a local file with the path it is written to on the watch.
type Resource struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// ObsoleteFile names a watch-side path that a previous manifest pushed but
// is no longer part of the current one. Push logs these; it never deletes
// them, since it has no way to know whether the user repurposed the file.
type ObsoleteFile struct {
	Path  string `json:"path"`
	Since string `json:"since"`
}

// Load reads and decodes a manifest file. Unknown fields are rejected, the
// same strictness the original manifest format was declared with, so a
// typo'd key fails loudly instead of being silently ignored.
func Load(manifestPath string) (Manifest, error) {
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		return Manifest{}, fmt.Errorf("resources: reading %s: %w", manifestPath, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("resources: decoding %s: %w", manifestPath, err)
	}
	return m, nil
}

// parentDirs returns the distinct, non-root parent directories of every
// resource's watch-side path, in first-seen order. Unlike the hardcoded
// /fonts and /images of the original tool, this is derived from whatever
// the manifest actually contains.
func parentDirs(resources []Resource) []string {
	seen := map[string]bool{}
	var dirs []string
	for _, r := range resources {
		dir := path.Dir(r.Path)
		if dir == "" || dir == "." || dir == "/" {
			continue
		}
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}
