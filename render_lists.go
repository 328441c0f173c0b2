package examplegen

import (
	"fmt"
	"strings"
)

func listPatternStrategy() Strategy {
	return Strategy{
		Name:     "list-pattern",
		Category: CategoryListPattern,
		Templates: templates(
			`//ldml/listPatterns/listPattern/listPatternPart[@type="*"]`,
			`//ldml/listPatterns/listPattern[@type="*"]/listPatternPart[@type="*"]`,
		),
		Render: renderListPattern,
	}
}

// listParts are the patterns of one list style.
type listParts struct {
	Pair   string
	Three  string
	Start  string
	Middle string
	End    string
}

func loadListParts(rc *RenderContext, prefix string) listParts {
	read := func(kind string) string {
		value, _ := rc.Value(prefix + `/listPatternPart[@type="` + kind + `"]`)
		return value
	}
	return listParts{
		Pair:   read("2"),
		Three:  read("3"),
		Start:  read("start"),
		Middle: read("middle"),
		End:    read("end"),
	}
}

func (lp *listParts) set(kind, value string) {
	switch kind {
	case "2":
		lp.Pair = value
	case "3":
		lp.Three = value
	case "start":
		lp.Start = value
	case "middle":
		lp.Middle = value
	case "end":
		lp.End = value
	}
}

// formatList joins items the way the list patterns prescribe. The three
// item pattern is only used when useThree is set.
func formatList(parts listParts, items []Variant, useThree bool) (Variant, error) {
	end := parts.End
	if end == "" {
		end = parts.Pair
	}

	switch len(items) {
	case 0:
		return nil, nil
	case 1:
		return items[0], nil
	case 2:
		return fillPattern(parts.Pair, items[0], items[1])
	}

	if len(items) == 3 && useThree && parts.Three != "" {
		return fillPattern(parts.Three, items[0], items[1], items[2])
	}
	if parts.Start == "" || parts.Middle == "" {
		return nil, fmt.Errorf("%w: list patterns need start and middle parts", ErrMissingValue)
	}
	result, err := fillPattern(parts.Start, items[0], items[1])
	if err != nil {
		return nil, err
	}
	for i := 2; i < len(items)-1; i++ {
		if result, err = fillPattern(parts.Middle, result, items[i]); err != nil {
			return nil, err
		}
	}
	return fillPattern(end, result, items[len(items)-1])
}

func listItems(rc *RenderContext) []Variant {
	codes := []string{"CH", "JP", "DE", "FR"}
	if rc.Supplemental != nil && len(rc.Supplemental.Samples.ListTerritories) > 0 {
		codes = rc.Supplemental.Samples.ListTerritories
	}
	items := make([]Variant, 0, len(codes))
	for _, code := range codes {
		items = append(items, Variant{sub(orCode(found(rc.Samples.TerritoryName(code)), code))})
	}
	return items
}

func renderListPattern(rc *RenderContext, p Path, value string) (Example, error) {
	raw := p.String()
	idx := strings.LastIndex(raw, "/listPatternPart")
	if idx < 0 {
		return Example{}, nil
	}
	kind := attrOf(p, "listPatternPart", "type")
	parts := loadListParts(rc, raw[:idx])
	parts.set(kind, value)

	sizes := map[string]int{"2": 2, "3": 3, "start": 3, "end": 3, "middle": 4}
	size, ok := sizes[kind]
	if !ok {
		return Example{}, nil
	}
	items := listItems(rc)
	if len(items) < size {
		return Example{}, fmt.Errorf("%w: need %d list items", ErrMissingValue, size)
	}

	v, err := formatList(parts, items[:size], kind == "3")
	if err != nil {
		return Example{}, err
	}
	return Example{Variants: []Variant{v}}, nil
}
