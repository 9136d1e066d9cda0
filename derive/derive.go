// Package derive computes the checkbox tokens of the analysis report from
// the categorical fields of an extraction record. Every derivation is pure
// and total: unrecognized values select nothing rather than failing.
package derive

import (
	"fmt"
	"strings"

	"github.com/humtersiso/insurstar-ocr/record"
)

// Glyphs rendered into checkbox cells. The trailing space on Selected
// matches the spacing baked into the production templates.
const (
	Selected   = "☑ "
	Unselected = "□"

	// BlankCell stands in for categorical fields echoed as literal text when
	// they are blank, so the surrounding table cell keeps its layout.
	BlankCell = "□"
)

// Tokens maps checkbox token names to their rendered glyph.
type Tokens map[string]string

// Derive computes every checkbox token for a record.
//
// Relationship tokens are populated under two naming schemes at once: the
// current relationship_1..relationship_8 names and the legacy
// CHECK_RELATIONSHIP_<category> names. Templates in circulation use either,
// so both are always filled identically.
func Derive(rec record.Record) Tokens {
	t := make(Tokens, 24)

	setGenderPair(t, "gender_male", "gender_female", rec.Gender)
	setGenderPair(t, "policyholder_gender_male", "policyholder_gender_female", rec.PolicyholderGender)

	// Vehicle category defaults to the car branch; only an explicit
	// motorcycle mention flips it.
	if strings.Contains(rec.VehicleType, "機車") {
		t["vehicle_type_moto"] = Selected
		t["vehicle_type_car"] = Unselected
	} else {
		t["vehicle_type_moto"] = Unselected
		t["vehicle_type_car"] = Selected
	}

	for i, category := range record.RelationshipCategories() {
		mark := Unselected
		if rec.Relationship == category {
			mark = Selected
		}
		t[fmt.Sprintf("relationship_%d", i+1)] = mark
		t["CHECK_RELATIONSHIP_"+category] = mark
	}

	// Fixed template positions, always ticked.
	t["CHECK_1"] = Selected
	t["CHECK_2"] = Selected

	t["check_compulsory_insurance_period"] = presenceMark(rec.CompulsoryInsurancePeriod)
	t["check_optional_insurance_period"] = presenceMark(rec.OptionalInsurancePeriod)

	return t
}

func setGenderPair(t Tokens, maleToken, femaleToken, value string) {
	switch value {
	case "男":
		t[maleToken] = Selected
		t[femaleToken] = Unselected
	case "女":
		t[maleToken] = Unselected
		t[femaleToken] = Selected
	default:
		t[maleToken] = Unselected
		t[femaleToken] = Unselected
	}
}

func presenceMark(period string) string {
	if record.IsBlank(period) {
		return Unselected
	}
	return Selected
}
