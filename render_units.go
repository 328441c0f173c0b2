package examplegen

import "fmt"

func unitPatternStrategy() Strategy {
	return Strategy{
		Name:     "unit-pattern",
		Category: CategoryUnitPattern,
		Templates: templates(
			`//ldml/units/unitLength[@type="*"]/unit[@type="*"]/unitPattern[@count="*"]`,
			`//ldml/units/unitLength[@type="*"]/unit[@type="*"]/perUnitPattern`,
		),
		Render: renderUnitPattern,
	}
}

func durationUnitStrategy() Strategy {
	return Strategy{
		Name:      "duration-unit",
		Category:  CategoryDurationUnit,
		Templates: templates(`//ldml/units/durationUnit[@type="*"]/durationUnitPattern`),
		Render: func(rc *RenderContext, _ Path, value string) (Example, error) {
			v := rc.Dates.Format(value, rc.Supplemental.SampleDuration())
			return Example{Variants: []Variant{v}}, nil
		},
	}
}

func compoundUnitStrategy() Strategy {
	return Strategy{
		Name:      "compound-unit",
		Category:  CategoryCompoundUnit,
		Templates: templates(`//ldml/units/unitLength[@type="*"]/compoundUnit[@type="*"]/compoundUnitPattern`),
		Render:    renderCompoundUnit,
	}
}

func renderUnitPattern(rc *RenderContext, p Path, value string) (Example, error) {
	length, err := ParseUnitLength(attrOf(p, "unitLength", "type"))
	if err != nil {
		return Example{}, err
	}

	if p.Last().Name == "perUnitPattern" {
		numerator, err := perUnitNumerator(rc, length)
		if err != nil {
			return Example{}, err
		}
		v, err := fillPattern(value, numerator)
		if err != nil {
			return Example{}, err
		}
		return Example{Variants: []Variant{v}}, nil
	}

	category, err := countCategory(p)
	if err != nil {
		return Example{}, err
	}
	sample, ok := rc.Samples.FirstSample(category)
	if !ok {
		return Example{}, fmt.Errorf("%w: no %s sample", ErrMissingValue, category)
	}
	v, err := fillPattern(value, Variant{sub(rc.Numbers.FormatDecimal(sample.Decimal))})
	if err != nil {
		return Example{}, err
	}
	return Example{Variants: []Variant{v}}, nil
}

// perUnitNumerator renders the amount shown in front of a per-unit pattern,
// flattened into a single substituted span.
func perUnitNumerator(rc *RenderContext, length UnitLength) (Variant, error) {
	unit := "length-meter"
	if rc.Supplemental != nil && rc.Supplemental.Samples.PerUnitNumerator != "" {
		unit = rc.Supplemental.Samples.PerUnitNumerator
	}
	sample, ok := rc.Samples.FirstSample(PluralOther)
	if !ok {
		return nil, fmt.Errorf("%w: no other sample", ErrMissingValue)
	}
	pattern, ok := rc.Samples.UnitPattern(length, unit, sample.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingValue, unitPath(length, unit))
	}
	v, err := fillPattern(pattern, Variant{sub(rc.Numbers.FormatDecimal(sample.Decimal))})
	if err != nil {
		return nil, err
	}
	return v.Substituted(), nil
}

func renderCompoundUnit(rc *RenderContext, p Path, value string) (Example, error) {
	length, err := ParseUnitLength(attrOf(p, "unitLength", "type"))
	if err != nil {
		return Example{}, err
	}
	op := attrOf(p, "compoundUnit", "type")

	var ex Example
	for _, category := range rc.Snapshot.PluralCategories() {
		v, err := compoundVariant(rc, length, op, category, value)
		if err != nil {
			return Example{}, err
		}
		ex.Add(v)
	}
	return ex, nil
}

func attrOf(p Path, element, key string) string {
	value, _ := p.Find(element, key)
	return value
}

// compoundVariant fills a per or times pattern. For "per" the numerator is
// inflected for category and the denominator is the bare unit name; for
// "times" the leading unit stays singular and the trailing one inflects.
func compoundVariant(rc *RenderContext, length UnitLength, op string, category PluralCategory, pattern string) (Variant, error) {
	first, second, ok := rc.Supplemental.CompoundOperands(op)
	if !ok {
		return nil, fmt.Errorf("%w: no sample units for %q", ErrMissingValue, op)
	}
	sample, ok := rc.Samples.FirstSample(category)
	if !ok {
		return nil, fmt.Errorf("%w: no %s sample", ErrMissingValue, category)
	}

	numeratorCategory, residueCategory := category, PluralOne
	if op == "times" {
		numeratorCategory, residueCategory = PluralOne, category
	}

	numeratorPattern, ok := rc.Samples.UnitPattern(length, first, numeratorCategory)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingValue, unitPath(length, first))
	}
	numerator, err := fillPattern(numeratorPattern, Variant{sub(rc.Numbers.FormatDecimal(sample.Decimal))})
	if err != nil {
		return nil, err
	}

	residuePattern, ok := rc.Samples.UnitPattern(length, second, residueCategory)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingValue, unitPath(length, second))
	}
	residue := patternResidue(residuePattern)

	return fillPattern(pattern, numerator.Substituted(), Variant{sub(residue)})
}
