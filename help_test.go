package examplegen

import (
	"strings"
	"testing"
)

func TestHelpCatalogRender(t *testing.T) {
	help, err := NewHelpCatalog(HelpDefinition{Templates: map[string]string{
		string(CategoryMiscPattern): `Wraps {{join .Placeholders " and "}} for {{.Attr "type" | upper}} in {{.Locale}}.`,
		string(CategoryEllipsis):    "   ",
	}})
	if err != nil {
		t.Fatalf("NewHelpCatalog: %v", err)
	}

	if !help.Has(CategoryMiscPattern) {
		t.Fatal("expected misc pattern help")
	}
	if help.Has(CategoryEllipsis) {
		t.Fatal("blank templates are dropped")
	}

	p, _ := ParsePath(`//ldml/numbers/miscPatterns[@numberSystem="latn"]/pattern[@type="range"]`)
	got, ok, err := help.Render(HelpData{Path: p, Value: "{0}–{1}", Category: CategoryMiscPattern, Locale: "it"})
	if err != nil || !ok {
		t.Fatalf("Render: ok=%v err=%v", ok, err)
	}
	want := "<div class='cldr_help'>Wraps {0} and {1} for RANGE in it.</div>"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}

	if _, ok, _ := help.Render(HelpData{Path: p, Category: CategoryZoneFormat}); ok {
		t.Fatal("unknown category should not render")
	}
}

func TestHelpCatalogErrors(t *testing.T) {
	if _, err := NewHelpCatalog(HelpDefinition{Templates: map[string]string{"x": "{{.Broken"}}); err == nil {
		t.Fatal("expected parse error")
	}

	help, err := NewHelpCatalog(HelpDefinition{Templates: map[string]string{"x": "{{.Missing}}"}})
	if err != nil {
		t.Fatalf("NewHelpCatalog: %v", err)
	}
	if _, _, err := help.Render(HelpData{Category: "x"}); err == nil {
		t.Fatal("expected execution error for unknown field")
	}

	var nilHelp *HelpCatalog
	if nilHelp.Has(CategoryEllipsis) {
		t.Fatal("nil catalog has no templates")
	}
}

func TestDefaultHelpCoversCategories(t *testing.T) {
	help, err := DefaultHelp()
	if err != nil {
		t.Fatalf("DefaultHelp: %v", err)
	}
	for _, c := range []Category{CategoryCurrencyName, CategoryEllipsis, CategoryMiscPattern, CategoryZoneFormat} {
		if !help.Has(c) {
			t.Fatalf("missing help for %s", c)
		}
	}

	path := writeFile(t, t.TempDir(), "help.json", `{"templates": {"ellipsis": "Ellipsis {{.Value}}"}}`)
	loaded, err := LoadHelpFile(path)
	if err != nil {
		t.Fatalf("LoadHelpFile: %v", err)
	}
	p, _ := ParsePath(`//ldml/characters/ellipsis[@type="final"]`)
	got, _, err := loaded.Render(HelpData{Path: p, Value: "{0}…", Category: CategoryEllipsis})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "Ellipsis {0}…") {
		t.Fatalf("Render = %q", got)
	}
}
