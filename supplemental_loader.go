package examplegen

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data
var embeddedData embed.FS

const (
	embeddedLocalesDir   = "data/locales"
	embeddedSupplemental = "data/supplemental.yaml"
	embeddedExclusions   = "data/exclusions.yaml"
	embeddedHelp         = "data/help.yaml"
	defaultEnglishLocale = "en"
)

// EmbeddedData exposes the bundled data directory.
func EmbeddedData() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return embeddedData
	}
	return sub
}

// LoadEmbeddedStore builds a DataStore from the bundled locale files.
func LoadEmbeddedStore() (*DataStore, error) {
	return NewDataStoreFromLoader(NewBundleLoader(embeddedData, embeddedLocalesDir))
}

// SupplementalLoader loads supplemental data from the embedded default
// plus optional files layered on top.
type SupplementalLoader struct {
	defaultPath string
	overrides   []string
}

// NewSupplementalLoader creates a loader, defaultPath may be empty
func NewSupplementalLoader(defaultPath string) *SupplementalLoader {
	return &SupplementalLoader{defaultPath: defaultPath}
}

// AddOverride adds a file merged after the default
func (l *SupplementalLoader) AddOverride(path string) {
	if path == "" {
		return
	}
	l.overrides = append(l.overrides, path)
}

// Load reads supplemental data.
func (l *SupplementalLoader) Load() (*SupplementalData, error) {
	raw, err := embeddedData.ReadFile(embeddedSupplemental)
	if err != nil {
		return nil, fmt.Errorf("read default supplemental data: %w", err)
	}

	var base SupplementalData
	if err := decodeByExtension(embeddedSupplemental, raw, &base); err != nil {
		return nil, fmt.Errorf("parse default supplemental data: %w", err)
	}

	files := make([]string, 0, len(l.overrides)+1)
	if l.defaultPath != "" {
		files = append(files, l.defaultPath)
	}
	files = append(files, l.overrides...)

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load supplemental data: %w", err)
		}
		var user SupplementalData
		if err := decodeByExtension(path, data, &user); err != nil {
			return nil, fmt.Errorf("parse supplemental data %s: %w", path, err)
		}
		mergeSupplemental(&base, &user)
	}

	return &base, nil
}

// DefaultSupplemental returns the embedded supplemental data.
func DefaultSupplemental() (*SupplementalData, error) {
	return NewSupplementalLoader("").Load()
}

func decodeByExtension(name string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return json.Unmarshal(data, out)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported extension %s", filepath.Ext(name))
	}
}

// mergeSupplemental merges source into dest (source takes precedence)
func mergeSupplemental(dest, source *SupplementalData) {
	for lang, rules := range source.DayPeriodRules {
		if dest.DayPeriodRules == nil {
			dest.DayPeriodRules = make(map[string]map[string]DayPeriodRule)
		}
		// a language rule set is replaced as a whole
		copied := make(map[string]DayPeriodRule, len(rules))
		for k, v := range rules {
			copied[k] = v
		}
		dest.DayPeriodRules[lang] = copied
	}

	for k, v := range source.Metazones {
		if dest.Metazones == nil {
			dest.Metazones = make(map[string]MetazoneInfo)
		}
		dest.Metazones[k] = v
	}

	dest.ZoneMetazones = mergeStringMap(dest.ZoneMetazones, source.ZoneMetazones)
	dest.ZoneTerritories = mergeStringMap(dest.ZoneTerritories, source.ZoneTerritories)
	dest.CurrencyCodes = mergeStringMap(dest.CurrencyCodes, source.CurrencyCodes)

	samples := source.Samples
	if len(samples.Currencies) > 0 {
		dest.Samples.Currencies = append([]string(nil), samples.Currencies...)
	}
	if len(samples.EllipsisTerritories) > 0 {
		dest.Samples.EllipsisTerritories = append([]string(nil), samples.EllipsisTerritories...)
	}
	if len(samples.ListTerritories) > 0 {
		dest.Samples.ListTerritories = append([]string(nil), samples.ListTerritories...)
	}
	if len(samples.Offsets) > 0 {
		dest.Samples.Offsets = append([]string(nil), samples.Offsets...)
	}
	if samples.Locale != "" {
		dest.Samples.Locale = samples.Locale
	}
	if samples.Zone != "" {
		dest.Samples.Zone = samples.Zone
	}
	if samples.Metazone != "" {
		dest.Samples.Metazone = samples.Metazone
	}
	if samples.DateTime != "" {
		dest.Samples.DateTime = samples.DateTime
	}
	if samples.Duration != "" {
		dest.Samples.Duration = samples.Duration
	}
	if samples.PerUnitNumerator != "" {
		dest.Samples.PerUnitNumerator = samples.PerUnitNumerator
	}
	dest.Samples.TimezoneTerritories = mergeStringMap(dest.Samples.TimezoneTerritories, samples.TimezoneTerritories)
	for op, units := range samples.CompoundUnits {
		if dest.Samples.CompoundUnits == nil {
			dest.Samples.CompoundUnits = make(map[string][]string)
		}
		dest.Samples.CompoundUnits[op] = append([]string(nil), units...)
	}
}

func mergeStringMap(dest, source map[string]string) map[string]string {
	if len(source) == 0 {
		return dest
	}
	if dest == nil {
		dest = make(map[string]string, len(source))
	}
	for k, v := range source {
		dest[k] = v
	}
	return dest
}
