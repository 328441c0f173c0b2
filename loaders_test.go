package examplegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFileLoaderJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "it.json", `{
  "locale": "it",
  "values": {
    "//ldml/characters/ellipsis[@type=\"final\"]": "{0}…",
    "//ldml/localeDisplayNames/territories/territory[@type=\"CH\"]": "Svizzera"
  }
}`)
	yamlPath := writeFile(t, dir, "it_override.yaml", `locale: it
parent: root
values:
  '//ldml/localeDisplayNames/territories/territory[@type="CH"]': "Confederazione Svizzera"
`)

	bundle, err := NewFileLoader(jsonPath, yamlPath).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(bundle) != 1 {
		t.Fatalf("expected 1 locale, got %d", len(bundle))
	}

	it := bundle["it"]
	if it.Parent != "root" {
		t.Fatalf("Parent = %q", it.Parent)
	}
	if got := it.Values[`//ldml/localeDisplayNames/territories/territory[@type="CH"]`]; got != "Confederazione Svizzera" {
		t.Fatalf("later file should win, got %q", got)
	}
	if got := it.Values[`//ldml/characters/ellipsis[@type="final"]`]; got != "{0}…" {
		t.Fatalf("unexpected ellipsis: %q", got)
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "en.yaml", "values: {}\n")

	tests := map[string]string{
		"unsupported extension": writeFile(t, dir, "en.txt", "values: {}\n"),
		"malformed path":        writeFile(t, dir, "bad.yaml", "values:\n  '//ldml/x[@type=\"open': v\n"),
		"missing file":          filepath.Join(dir, "missing.yaml"),
	}
	for name, path := range tests {
		if _, err := NewFileLoader(good, path).Load(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	if _, err := NewFileLoader().Load(); err == nil {
		t.Fatal("expected error without paths")
	}
}

func TestLoadDirectoryDerivesLocaleFromFileName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "de_CH.yaml", `values:
  '//ldml/numbers/symbols[@numberSystem="latn"]/group': "’"
`)
	writeFile(t, dir, "notes.md", "not locale data")

	bundle, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	data, ok := bundle["de-CH"]
	if !ok || len(bundle) != 1 {
		t.Fatalf("unexpected bundle %v", bundle)
	}
	if data.Locale != "de-CH" {
		t.Fatalf("Locale = %q", data.Locale)
	}
}

func TestEncodeLocaleYAMLRoundTrip(t *testing.T) {
	src := &LocaleData{
		Locale: "fr",
		Parent: "root",
		Values: map[string]string{`//ldml/numbers/miscPatterns[@numberSystem="latn"]/pattern[@type="atLeast"]`: "au moins {0}"},
	}
	raw, err := EncodeLocaleYAML(src)
	if err != nil {
		t.Fatalf("EncodeLocaleYAML: %v", err)
	}
	if !strings.Contains(string(raw), "parent: root") {
		t.Fatalf("missing parent in %s", raw)
	}

	got, err := decodeLocaleFile("fr.yaml", raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Values[`//ldml/numbers/miscPatterns[@numberSystem="latn"]/pattern[@type="atLeast"]`] != "au moins {0}" {
		t.Fatalf("round trip lost value: %v", got.Values)
	}

	if _, err := EncodeLocaleYAML(nil); err == nil {
		t.Fatal("expected error for nil data")
	}
}

func TestLoadEmbeddedStore(t *testing.T) {
	store, err := LoadEmbeddedStore()
	if err != nil {
		t.Fatalf("LoadEmbeddedStore: %v", err)
	}
	for _, locale := range []string{"root", "en", "de", "it", "fr", "cs", "pl", "sv", "zh"} {
		if !store.Has(locale) {
			t.Fatalf("embedded store misses %s", locale)
		}
	}
}
