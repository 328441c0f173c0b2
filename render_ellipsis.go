package examplegen

import "strings"

func ellipsisStrategy() Strategy {
	return Strategy{
		Name:      "ellipsis",
		Category:  CategoryEllipsis,
		Templates: templates(`//ldml/characters/ellipsis[@type="*"]`),
		Render:    renderEllipsis,
	}
}

// ellipsisTerritories returns the names of the two territories whose names
// surround the ellipsis glyph.
func ellipsisTerritories(rc *RenderContext) (string, string, bool) {
	codes := []string{"CH", "JP"}
	if rc.Supplemental != nil && len(rc.Supplemental.Samples.EllipsisTerritories) >= 2 {
		codes = rc.Supplemental.Samples.EllipsisTerritories
	}
	head, ok := rc.Samples.TerritoryName(codes[0])
	if !ok {
		return "", "", false
	}
	tail, ok := rc.Samples.TerritoryName(codes[1])
	if !ok {
		return "", "", false
	}
	return head, tail, true
}

// renderEllipsis fills the glyph pattern with territory names. Character
// level types cut one grapheme next to the glyph, word level types keep
// the words whole.
func renderEllipsis(rc *RenderContext, p Path, value string) (Example, error) {
	head, tail, ok := ellipsisTerritories(rc)
	if !ok {
		return Example{}, nil
	}
	kind := attrOf(p, "ellipsis", "type")
	position := strings.TrimPrefix(kind, "word-")
	if position == kind {
		head = Clip(head, 0, 1)
		tail = Clip(tail, 1, 0)
	}

	var args []Variant
	switch position {
	case "initial":
		args = []Variant{{sub(tail)}}
	case "medial":
		args = []Variant{{sub(head)}, {sub(tail)}}
	case "final":
		args = []Variant{{sub(head)}}
	default:
		return Example{}, nil
	}
	v, err := fillPattern(value, args...)
	if err != nil {
		return Example{}, err
	}
	return Example{Variants: []Variant{v}}, nil
}
