package examplegen

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"sort"
	"strings"
)

// HelpDefinition is the serialized form of help.yaml.
type HelpDefinition struct {
	Templates map[string]string `json:"templates" yaml:"templates"`
}

// HelpData is passed to help templates.
type HelpData struct {
	Path     Path
	Value    string
	Category Category
	Locale   string
}

// Attr returns the first attribute named key in the path.
func (d HelpData) Attr(key string) string {
	return d.Path.Attr(key)
}

// Placeholders lists the {n} slots used by the value.
func (d HelpData) Placeholders() []string {
	count := placeholderCount(d.Value)
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, fmt.Sprintf("{%d}", i))
	}
	return out
}

// HelpCatalog holds one help template per category.
type HelpCatalog struct {
	templates map[Category]*template.Template
}

// helpFuncs returns the helper functions available to help templates
func helpFuncs() template.FuncMap {
	return template.FuncMap{
		"join":    strings.Join,
		"starred": func(p Path) string { return p.Starred() },
		"upper":   strings.ToUpper,
	}
}

// NewHelpCatalog parses every template in def.
func NewHelpCatalog(def HelpDefinition) (*HelpCatalog, error) {
	c := &HelpCatalog{templates: make(map[Category]*template.Template, len(def.Templates))}
	names := make([]string, 0, len(def.Templates))
	for name := range def.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body := strings.TrimSpace(def.Templates[name])
		if body == "" {
			continue
		}
		tmpl, err := template.New(name).Funcs(helpFuncs()).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("help: template %q: %w", name, err)
		}
		c.templates[Category(name)] = tmpl
	}
	return c, nil
}

// DefaultHelp returns the bundled help templates.
func DefaultHelp() (*HelpCatalog, error) {
	data, err := embeddedData.ReadFile(embeddedHelp)
	if err != nil {
		return nil, err
	}
	return parseHelp(embeddedHelp, data)
}

// LoadHelpFile reads help templates from a YAML or JSON file.
func LoadHelpFile(path string) (*HelpCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseHelp(path, data)
}

func parseHelp(name string, data []byte) (*HelpCatalog, error) {
	var def HelpDefinition
	if err := decodeByExtension(name, data, &def); err != nil {
		return nil, fmt.Errorf("help: %s: %w", name, err)
	}
	return NewHelpCatalog(def)
}

// Has reports whether category has a help template.
func (c *HelpCatalog) Has(category Category) bool {
	if c == nil {
		return false
	}
	_, ok := c.templates[category]
	return ok
}

// Render executes the template for data.Category into a cldr_help div.
func (c *HelpCatalog) Render(data HelpData) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	tmpl, ok := c.templates[data.Category]
	if !ok {
		return "", false, nil
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", false, fmt.Errorf("help: %s: %w", data.Category, err)
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", false, nil
	}
	return "<div class='" + classHelp + "'>" + text + "</div>", true, nil
}
