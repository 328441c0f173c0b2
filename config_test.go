package examplegen

import (
	"strings"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Supplemental == nil {
		t.Fatal("expected embedded supplemental data")
	}
	if cfg.Exclusions == nil {
		t.Fatal("expected embedded exclusions")
	}
	if cfg.Help == nil || !cfg.Help.Has(CategoryEllipsis) {
		t.Fatal("expected embedded help templates")
	}
	if cfg.Registry == nil || len(cfg.Registry.Strategies()) == 0 {
		t.Fatal("expected built in strategies")
	}
	if cfg.Logger == nil {
		t.Fatal("expected discard logger")
	}
	if _, ok := cfg.Metrics.(NoopMetrics); !ok {
		t.Fatalf("Metrics = %T, want NoopMetrics", cfg.Metrics)
	}
	if cfg.MaxBackgroundDepth != DefaultMaxBackgroundDepth {
		t.Fatalf("MaxBackgroundDepth = %d", cfg.MaxBackgroundDepth)
	}
	if cfg.English != nil {
		t.Fatal("english snapshot needs a store")
	}
}

func TestConfigResolvesEnglishFromStore(t *testing.T) {
	store, err := LoadEmbeddedStore()
	if err != nil {
		t.Fatalf("LoadEmbeddedStore: %v", err)
	}

	cfg, err := NewConfig(WithStore(store))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.English == nil || cfg.English.Locale() != "en" {
		t.Fatalf("English = %v", cfg.English)
	}
	english, ok := cfg.English.(*ResolvedFile)
	if !ok {
		t.Fatalf("English = %T", cfg.English)
	}
	if err := english.Set("//ldml/x", "y"); err == nil {
		t.Fatal("expected english reference to be frozen")
	}

	cfg, err = NewConfig(WithStore(store), WithEnglishLocale("fr"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.English.Locale() != "fr" {
		t.Fatalf("English locale = %q", cfg.English.Locale())
	}

	explicit, _ := store.Resolve("de")
	cfg, err = NewConfig(WithStore(store), WithEnglish(explicit))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.English.Locale() != "de" {
		t.Fatal("WithEnglish should win over the store")
	}
}

func TestConfigOptionErrors(t *testing.T) {
	tests := map[string]Option{
		"empty english locale": WithEnglishLocale(""),
		"zero depth":           WithMaxBackgroundDepth(0),
		"missing exclusions":   WithExclusionsFile("does-not-exist.yaml"),
		"missing supplemental": WithSupplementalFile("does-not-exist.yaml"),
		"duplicate strategy":   WithStrategy(ellipsisStrategy()),
	}
	for name, opt := range tests {
		if _, err := NewConfig(opt); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestConfigSupplementalOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "supplemental.yaml", `samples:
  zone: Asia/Saigon
  currencies: [CHF]
day_period_rules:
  en:
    morning1: {from: "05:00", before: "11:00"}
`)
	cfg, err := NewConfig(WithSupplementalFile(path), WithSupplementalFile(""))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	samples := cfg.Supplemental.Samples
	if samples.Zone != "Asia/Saigon" {
		t.Fatalf("Zone = %q", samples.Zone)
	}
	if len(samples.Currencies) != 1 || samples.Currencies[0] != "CHF" {
		t.Fatalf("Currencies = %v", samples.Currencies)
	}
	if samples.Metazone != "America_Central" {
		t.Fatal("untouched samples should keep embedded values")
	}
	if _, ok := cfg.Supplemental.DayPeriodRules["en"]["night1"]; ok {
		t.Fatal("a language's day period rules are replaced as a whole")
	}
	if _, ok := cfg.Supplemental.DayPeriodRules["de"]["night1"]; !ok {
		t.Fatal("other languages keep their rules")
	}
}

func TestConfigExclusionsFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "exclusions.yaml", `prefixes:
  - //ldml/characters
`)
	engine := testEngine(t, "en", WithExclusionsFile(path))

	if got := engine.Classify(`//ldml/characters/ellipsis[@type="final"]`); got != CategoryNone {
		t.Fatalf("Classify(ellipsis) = %q", got)
	}
	if got := engine.Classify(gregorian + `months/monthContext[@type="format"]/monthWidth[@type="wide"]/month[@type="9"]`); got != CategoryNone {
		t.Fatalf("months have no renderer, got %q", got)
	}
	if got := engine.Classify(`//ldml/numbers/currencies/currency[@type="USD"]/symbol`); !strings.HasPrefix(string(got), "currency") {
		t.Fatalf("Classify(symbol) = %q", got)
	}
}
