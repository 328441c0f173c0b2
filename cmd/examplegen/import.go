package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	cldr "golang.org/x/text/unicode/cldr"

	examplegen "github.com/goliatone/go-examplegen"
)

var importOpts struct {
	CLDR    string
	Out     string
	Locales []string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert CLDR XML into locale files",
	Long: `Read a CLDR core data directory (with main/ and supplemental/) and
write one locale YAML file per requested locale. Only the list, ellipsis
and unit sections are converted.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	flags := importCmd.Flags()
	flags.StringVar(&importOpts.CLDR, "cldr", "", "CLDR core data directory (default: $CLDR_CORE_DIR)")
	flags.StringVar(&importOpts.Out, "out", ".", "directory for the generated locale files")
	flags.StringSliceVar(&importOpts.Locales, "locale", nil, "locale to convert, repeat or comma separate")
}

func runImport(cmd *cobra.Command, _ []string) error {
	if len(importOpts.Locales) == 0 {
		return errors.New("at least one --locale value is required")
	}
	dir := importOpts.CLDR
	if dir == "" {
		dir = os.Getenv("CLDR_CORE_DIR")
	}
	if dir == "" {
		return errors.New("missing CLDR data directory (set --cldr or CLDR_CORE_DIR)")
	}

	data, err := loadCLDR(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(importOpts.Out, 0o755); err != nil {
		return err
	}

	for _, raw := range importOpts.Locales {
		locale, err := normalizeLocale(raw)
		if err != nil {
			return err
		}
		ldml := data.RawLDML(strings.ReplaceAll(locale, "-", "_"))
		if ldml == nil {
			return fmt.Errorf("no CLDR data for %s", locale)
		}

		values := make(map[string]string)
		extractListPatterns(ldml, values)
		extractEllipsis(ldml, values)
		extractUnits(ldml, values)

		encoded, err := examplegen.EncodeLocaleYAML(&examplegen.LocaleData{Locale: locale, Values: values})
		if err != nil {
			return err
		}
		target := filepath.Join(importOpts.Out, locale+".yaml")
		if err := os.WriteFile(target, encoded, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d values -> %s\n", locale, len(values), target)
	}
	return nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func normalizeLocale(raw string) (string, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	if raw == "" {
		return "", errors.New("empty locale identifier")
	}
	if raw == examplegen.RootLocale {
		return raw, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", raw, err)
	}
	return tag.String(), nil
}

// usable reports whether an element carries data worth importing.
func usable(c *cldr.Common) bool {
	return c != nil && c.Alt == "" && c.Data() != ""
}

func typeAttr(name, value string) string {
	if value == "" {
		return name
	}
	return fmt.Sprintf(`%s[@type="%s"]`, name, value)
}

func extractListPatterns(ldml *cldr.LDML, values map[string]string) {
	if ldml.ListPatterns == nil {
		return
	}
	for _, pattern := range ldml.ListPatterns.ListPattern {
		if pattern == nil {
			continue
		}
		kind := pattern.GetCommon().Type
		if kind == "standard" {
			kind = ""
		}
		prefix := "//ldml/listPatterns/" + typeAttr("listPattern", kind)
		for _, part := range pattern.ListPatternPart {
			if !usable(part) {
				continue
			}
			values[prefix+"/"+typeAttr("listPatternPart", part.Type)] = part.Data()
		}
	}
}

func extractEllipsis(ldml *cldr.LDML, values map[string]string) {
	if ldml.Characters == nil {
		return
	}
	for _, ellipsis := range ldml.Characters.Ellipsis {
		if !usable(ellipsis) || ellipsis.Type == "" {
			continue
		}
		values["//ldml/characters/"+typeAttr("ellipsis", ellipsis.Type)] = ellipsis.Data()
	}
}

func extractUnits(ldml *cldr.LDML, values map[string]string) {
	if ldml.Units == nil {
		return
	}
	for _, length := range ldml.Units.UnitLength {
		if length == nil || length.GetCommon().Type == "" {
			continue
		}
		prefix := "//ldml/units/" + typeAttr("unitLength", length.GetCommon().Type)

		for _, compound := range length.CompoundUnit {
			if compound == nil {
				continue
			}
			for _, pattern := range compound.CompoundUnitPattern {
				if usable(pattern) {
					values[prefix+"/"+typeAttr("compoundUnit", compound.GetCommon().Type)+"/compoundUnitPattern"] = pattern.Data()
				}
			}
		}

		for _, unit := range length.Unit {
			if unit == nil || unit.GetCommon().Type == "" {
				continue
			}
			unitPrefix := prefix + "/" + typeAttr("unit", unit.GetCommon().Type)
			for _, pattern := range unit.UnitPattern {
				if pattern == nil || !usable(&pattern.Common) || pattern.Count == "" {
					continue
				}
				values[fmt.Sprintf(`%s/unitPattern[@count="%s"]`, unitPrefix, pattern.Count)] = pattern.Data()
			}
			for _, pattern := range unit.PerUnitPattern {
				if usable(pattern) {
					values[unitPrefix+"/perUnitPattern"] = pattern.Data()
				}
			}
		}
	}
}
