package examplegen

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileLoader reads locale files from disk. Files for the same locale are
// merged in order, later files win.
type FileLoader struct {
	paths []string
}

var _ Loader = (*FileLoader)(nil)

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

func (l *FileLoader) Load() (Bundle, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("examplegen: no loader paths configured")
	}

	bundle := make(Bundle)
	for _, p := range l.paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("examplegen: read %s: %w", p, err)
		}
		locale, err := decodeLocaleFile(p, data)
		if err != nil {
			return nil, fmt.Errorf("examplegen: decode %s: %w", p, err)
		}
		mergeLocaleData(bundle, locale)
	}
	return bundle, nil
}

// BundleLoader reads every locale file under dir in fsys, e.g. the embedded
// data directory.
type BundleLoader struct {
	fsys fs.FS
	dir  string
}

var _ Loader = (*BundleLoader)(nil)

func NewBundleLoader(fsys fs.FS, dir string) *BundleLoader {
	return &BundleLoader{fsys: fsys, dir: dir}
}

func (l *BundleLoader) Load() (Bundle, error) {
	if l == nil || l.fsys == nil {
		return nil, errors.New("examplegen: no bundle filesystem configured")
	}
	dir := l.dir
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("examplegen: list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isLocaleFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	bundle := make(Bundle, len(names))
	for _, name := range names {
		full := path.Join(dir, name)
		data, err := fs.ReadFile(l.fsys, full)
		if err != nil {
			return nil, fmt.Errorf("examplegen: read %s: %w", full, err)
		}
		locale, err := decodeLocaleFile(name, data)
		if err != nil {
			return nil, fmt.Errorf("examplegen: decode %s: %w", full, err)
		}
		mergeLocaleData(bundle, locale)
	}
	return bundle, nil
}

// LoadDirectory loads every locale file in dir.
func LoadDirectory(dir string) (Bundle, error) {
	return NewBundleLoader(os.DirFS(dir), ".").Load()
}

func isLocaleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func decodeLocaleFile(name string, data []byte) (*LocaleData, error) {
	ext := strings.ToLower(filepath.Ext(name))

	var locale LocaleData
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &locale); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &locale); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if locale.Locale == "" {
		locale.Locale = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	locale.Locale = normalizeLocale(locale.Locale)
	for key := range locale.Values {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("empty path in %s", name)
		}
		if _, err := ParsePath(key); err != nil {
			return nil, err
		}
	}
	return &locale, nil
}

func mergeLocaleData(dst Bundle, src *LocaleData) {
	if src == nil {
		return
	}
	existing, ok := dst[src.Locale]
	if !ok {
		dst[src.Locale] = src
		return
	}
	if src.Parent != "" {
		existing.Parent = src.Parent
	}
	if existing.Values == nil {
		existing.Values = make(map[string]string, len(src.Values))
	}
	for key, value := range src.Values {
		existing.Values[key] = value
	}
}

// EncodeLocaleYAML writes locale data in the bundle layout.
func EncodeLocaleYAML(data *LocaleData) ([]byte, error) {
	if data == nil {
		return nil, errors.New("examplegen: nil locale data")
	}
	return yaml.Marshal(data)
}
