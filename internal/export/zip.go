package export

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// BundleFile is one document destined for a rename bundle.
type BundleFile struct {
	// Name is the synthesized filename inside the archive.
	Name string
	Data []byte
}

// WriteRenameBundle streams a zip archive of the renamed documents, plus an
// optional manifest workbook under the given name. Duplicate synthesized
// names are disambiguated with a " (n)" suffix before the extension so that
// no archive entry silently overwrites another.
func WriteRenameBundle(w io.Writer, files []BundleFile, manifestName string, manifest []byte) error {
	zw := zip.NewWriter(w)
	used := make(map[string]int, len(files))

	for _, f := range files {
		name := uniqueName(used, f.Name)
		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create entry %s: %w", name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			return fmt.Errorf("write entry %s: %w", name, err)
		}
	}

	if len(manifest) > 0 {
		name := uniqueName(used, manifestName)
		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create manifest: %w", err)
		}
		if _, err := entry.Write(manifest); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}

	return zw.Close()
}

func uniqueName(used map[string]int, name string) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}
