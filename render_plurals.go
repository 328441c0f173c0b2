package examplegen

import (
	"fmt"
	"strconv"
)

func pluralMinimalPairStrategy() Strategy {
	return Strategy{
		Name:      "plural-minimal-pair",
		Category:  CategoryPluralMinimalPair,
		Templates: templates(`//ldml/numbers/minimalPairs/pluralMinimalPairs[@count="*"]`),
		Render:    renderPluralMinimalPair,
	}
}

func ordinalMinimalPairStrategy() Strategy {
	return Strategy{
		Name:      "ordinal-minimal-pair",
		Category:  CategoryOrdinalMinimalPair,
		Templates: templates(`//ldml/numbers/minimalPairs/ordinalMinimalPairs[@ordinal="*"]`),
		Render:    renderOrdinalMinimalPair,
	}
}

func renderPluralMinimalPair(rc *RenderContext, p Path, value string) (Example, error) {
	category, err := countCategory(p)
	if err != nil {
		return Example{}, err
	}
	sample, ok := rc.Samples.IntegerSample(category)
	if !ok {
		if sample, ok = rc.Samples.FirstSample(category); !ok {
			return Example{}, fmt.Errorf("%w: no %s sample", ErrMissingValue, category)
		}
	}
	v, err := fillPattern(value, Variant{sub(rc.Numbers.FormatDecimal(sample.Decimal))})
	if err != nil {
		return Example{}, err
	}
	return Example{Variants: []Variant{v}}, nil
}

func renderOrdinalMinimalPair(rc *RenderContext, p Path, value string) (Example, error) {
	category, err := parsePluralCategory(attrOf(p, "ordinalMinimalPairs", "ordinal"))
	if err != nil {
		return Example{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	n, ok := rc.Samples.OrdinalSample(category)
	if !ok {
		return Example{}, fmt.Errorf("%w: no ordinal %s sample", ErrMissingValue, category)
	}
	v, err := fillPattern(value, Variant{sub(strconv.Itoa(n))})
	if err != nil {
		return Example{}, err
	}
	return Example{Variants: []Variant{v}}, nil
}
