package examplegen

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	localeDisplayPrefix   = `//ldml/localeDisplayNames/`
	localePatternPath     = localeDisplayPrefix + `localeDisplayPattern/localePattern`
	localeSeparatorPath   = localeDisplayPrefix + `localeDisplayPattern/localeSeparator`
	localeKeyTypePath     = localeDisplayPrefix + `localeDisplayPattern/localeKeyTypePattern`
	regionFormatPath      = zoneNamesPrefix + `regionFormat`
	localeSegmentSentinel = "\uffff"
)

// bcp47Keys maps unicode extension keys to the key names used in paths.
var bcp47Keys = map[string]string{
	"ca": "calendar",
	"co": "collation",
	"cu": "currency",
	"hc": "hours",
	"ms": "measure",
	"nu": "numbers",
	"tz": "timezone",
}

func localePatternStrategy() Strategy {
	return Strategy{
		Name:      "locale-pattern",
		Category:  CategoryLocalePattern,
		Templates: templates(localePatternPath),
		Render:    renderLocalePattern,
	}
}

func localeSeparatorStrategy() Strategy {
	return Strategy{
		Name:      "locale-separator",
		Category:  CategoryLocaleSeparator,
		Templates: templates(localeSeparatorPath),
		Render:    renderLocaleSeparator,
	}
}

func localeKeyTypeStrategy() Strategy {
	return Strategy{
		Name:      "locale-key-type-pattern",
		Category:  CategoryLocaleKeyType,
		Templates: templates(localeKeyTypePath),
		Render:    renderLocaleKeyType,
	}
}

func displayNameStrategy() Strategy {
	return Strategy{
		Name:     "display-name",
		Category: CategoryDisplayName,
		Templates: templates(
			localeDisplayPrefix+`languages/language[@type="*"]`,
			localeDisplayPrefix+`scripts/script[@type="*"]`,
			localeDisplayPrefix+`territories/territory[@type="*"]`,
			localeDisplayPrefix+`variants/variant[@type="*"]`,
			localeDisplayPrefix+`types/type[@key="*"][@type="*"]`,
		),
		Render:  renderFragment,
		Enclose: encloseDisplayName,
	}
}

func keyNameStrategy() Strategy {
	return Strategy{
		Name:      "key-name",
		Category:  CategoryDisplayName,
		Templates: templates(localeDisplayPrefix + `keys/key[@type="*"]`),
		Render:    renderFragment,
		Enclose:   encloseKeyName,
	}
}

func codePatternStrategy() Strategy {
	return Strategy{
		Name:      "code-pattern",
		Category:  CategoryCodePattern,
		Templates: templates(localeDisplayPrefix + `codePatterns/codePattern[@type="*"]`),
		Render:    renderCodePattern,
	}
}

// renderFragment shows a value that is normally seen inside another
// pattern; the background composer supplies the surrounding text.
func renderFragment(_ *RenderContext, _ Path, value string) (Example, error) {
	return Example{Variants: []Variant{{sub(value)}}}, nil
}

type localeExtension struct {
	Key  string
	Type string
}

// sampleLocale is the decomposed sample locale id.
type sampleLocale struct {
	Language   string
	Script     string
	Region     string
	Extensions []localeExtension
}

func parseSampleLocale(id string) sampleLocale {
	out := sampleLocale{Language: "uz", Script: "Arab", Region: "AF"}
	tag := language.Make(id)
	if base, conf := tag.Base(); conf != language.No {
		out.Language = base.String()
	}
	if script, conf := tag.Script(); conf == language.Exact {
		out.Script = script.String()
	}
	if region, conf := tag.Region(); conf == language.Exact {
		out.Region = region.String()
	}

	// extension types such as short zone ids are not all known to x/text,
	// so the -u- keys are read from the id itself
	tokens := strings.Split(strings.ToLower(normalizeLocale(id)), "-")
	inU := false
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if len(token) == 1 {
			inU = token == "u"
			continue
		}
		if !inU || len(token) != 2 || i+1 >= len(tokens) || len(tokens[i+1]) < 3 {
			continue
		}
		out.Extensions = append(out.Extensions, localeExtension{Key: token, Type: tokens[i+1]})
		i++
	}
	return out
}

func (rc *RenderContext) sampleLocale() sampleLocale {
	return parseSampleLocale(rc.Samples.SampleLocale())
}

func found(name string, ok bool) string {
	if !ok {
		return ""
	}
	return name
}

func orCode(name, code string) string {
	if name == "" {
		return code
	}
	return name
}

// extensionName returns the key name and the displayed value of a locale
// extension.
func (rc *RenderContext) extensionName(ext localeExtension) (string, string) {
	key, ok := bcp47Keys[ext.Key]
	if !ok {
		key = ext.Key
	}
	keyName := orCode(found(rc.Samples.KeyName(key)), key)
	if key == "timezone" {
		return keyName, rc.zoneTerritoryName(ext.Type)
	}
	return keyName, orCode(found(rc.Samples.TypeName(key, ext.Type)), ext.Type)
}

// zoneTerritoryName renders a short time zone id through regionFormat.
func (rc *RenderContext) zoneTerritoryName(id string) string {
	territory := ""
	if rc.Supplemental != nil {
		territory = rc.Supplemental.Samples.TimezoneTerritories[id]
	}
	if territory == "" {
		return id
	}
	name := orCode(found(rc.Samples.TerritoryName(territory)), territory)
	pattern, ok := rc.Value(regionFormatPath)
	if !ok {
		return name
	}
	text, err := fillText(pattern, name)
	if err != nil {
		return name
	}
	return text
}

// extensionDisplay is the text shown for an extension inside a locale
// name: a self describing type name, or the key type pattern otherwise.
func (rc *RenderContext) extensionDisplay(ext localeExtension, keyTypePattern string) string {
	key := bcp47Keys[ext.Key]
	if key != "timezone" {
		if name, ok := rc.Samples.TypeName(key, ext.Type); ok {
			return name
		}
	}
	keyName, typeName := rc.extensionName(ext)
	text, err := fillText(keyTypePattern, keyName, typeName)
	if err != nil {
		return typeName
	}
	return text
}

// localeComponents returns the language name and the detail lists of
// increasing length shown after it.
func (rc *RenderContext) localeComponents(keyTypePattern string) (string, [][]string) {
	sample := rc.sampleLocale()
	lang := orCode(found(rc.Samples.LanguageName(sample.Language)), sample.Language)
	script := orCode(found(rc.Samples.ScriptName(sample.Script)), sample.Script)
	region := orCode(found(rc.Samples.TerritoryName(sample.Region)), sample.Region)
	full := []string{script, region}
	for _, ext := range sample.Extensions {
		full = append(full, rc.extensionDisplay(ext, keyTypePattern))
	}
	return lang, [][]string{{region}, {script, region}, full}
}

func (rc *RenderContext) valueOr(path, fallback string) string {
	if value, ok := rc.Value(path); ok {
		return value
	}
	return fallback
}

func joinWithPattern(pattern string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	out := items[0]
	for _, item := range items[1:] {
		joined, err := fillText(pattern, out, item)
		if err != nil {
			return strings.Join(items, ", ")
		}
		out = joined
	}
	return out
}

func renderLocalePattern(rc *RenderContext, _ Path, value string) (Example, error) {
	separator := rc.valueOr(localeSeparatorPath, "{0}, {1}")
	keyType := rc.valueOr(localeKeyTypePath, "{0}: {1}")
	lang, details := rc.localeComponents(keyType)

	var ex Example
	for _, detail := range details {
		v, err := fillPattern(value, Variant{sub(lang)}, Variant{sub(joinWithPattern(separator, detail))})
		if err != nil {
			return Example{}, err
		}
		ex.Add(v)
	}
	return ex, nil
}

// renderLocaleSeparator builds whole locale names and shows each segment
// between two separators as one substituted run.
func renderLocaleSeparator(rc *RenderContext, _ Path, value string) (Example, error) {
	pattern := rc.valueOr(localePatternPath, "{0} ({1})")
	keyType := rc.valueOr(localeKeyTypePath, "{0}: {1}")
	lang, details := rc.localeComponents(keyType)

	var ex Example
	for _, detail := range details[1:] {
		full, err := fillText(pattern, lang, strings.Join(detail, localeSegmentSentinel))
		if err != nil {
			return Example{}, err
		}
		segments := strings.Split(full, localeSegmentSentinel)
		v := Variant{sub(segments[0])}
		for _, segment := range segments[1:] {
			if v, err = fillPattern(value, v, Variant{sub(segment)}); err != nil {
				return Example{}, err
			}
		}
		ex.Add(v)
	}
	return ex, nil
}

func renderLocaleKeyType(rc *RenderContext, _ Path, value string) (Example, error) {
	var ex Example
	for _, ext := range rc.sampleLocale().Extensions {
		keyName, typeName := rc.extensionName(ext)
		v, err := fillPattern(value, Variant{sub(keyName)}, Variant{sub(typeName)})
		if err != nil {
			return Example{}, err
		}
		ex.Add(v)
	}
	return ex, nil
}

func encloseDisplayName(rc *RenderContext, p Path) (Enclosure, bool) {
	sample := rc.sampleLocale()
	if p.Last().Name == "language" {
		region := orCode(found(rc.Samples.TerritoryName(sample.Region)), sample.Region)
		return Enclosure{Path: localePatternPath, Slot: 0, Args: map[int]string{1: region}}, true
	}
	lang := orCode(found(rc.Samples.LanguageName(sample.Language)), sample.Language)
	return Enclosure{Path: localePatternPath, Slot: 1, Args: map[int]string{0: lang}}, true
}

func encloseKeyName(rc *RenderContext, p Path) (Enclosure, bool) {
	key := attrOf(p, "key", "type")
	for _, ext := range rc.sampleLocale().Extensions {
		if bcp47Keys[ext.Key] != key {
			continue
		}
		_, typeName := rc.extensionName(ext)
		return Enclosure{Path: localeKeyTypePath, Slot: 0, Args: map[int]string{1: typeName}}, true
	}
	return Enclosure{}, false
}

func renderCodePattern(rc *RenderContext, p Path, value string) (Example, error) {
	sample := rc.sampleLocale()
	var name string
	switch attrOf(p, "codePattern", "type") {
	case "language":
		name = found(rc.Samples.LanguageName(sample.Language))
	case "script":
		name = found(rc.Samples.ScriptName(sample.Script))
	case "territory":
		name = found(rc.Samples.TerritoryName(sample.Region))
	}
	if name == "" {
		return Example{}, nil
	}
	v, err := fillPattern(value, Variant{sub(name)})
	if err != nil {
		return Example{}, err
	}
	return Example{Variants: []Variant{v}}, nil
}
