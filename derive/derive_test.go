package derive

import (
	"fmt"
	"testing"

	"github.com/humtersiso/insurstar-ocr/record"
)

func TestGenderTokens(t *testing.T) {
	tests := []struct {
		name       string
		gender     string
		wantMale   string
		wantFemale string
	}{
		{"male", "男", Selected, Unselected},
		{"female", "女", Unselected, Selected},
		{"blank", "", Unselected, Unselected},
		{"sentinel", record.Unfilled, Unselected, Unselected},
		{"garbage", "不明", Unselected, Unselected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Derive(record.Record{Gender: tt.gender})
			if tokens["gender_male"] != tt.wantMale {
				t.Errorf("gender_male = %q, want %q", tokens["gender_male"], tt.wantMale)
			}
			if tokens["gender_female"] != tt.wantFemale {
				t.Errorf("gender_female = %q, want %q", tokens["gender_female"], tt.wantFemale)
			}
		})
	}
}

func TestVehicleTypeTokens(t *testing.T) {
	tokens := Derive(record.Record{VehicleType: "重型機車"})
	if tokens["vehicle_type_moto"] != Selected || tokens["vehicle_type_car"] != Unselected {
		t.Error("機車 must select the motorcycle branch")
	}

	tokens = Derive(record.Record{VehicleType: "自用小客車"})
	if tokens["vehicle_type_car"] != Selected || tokens["vehicle_type_moto"] != Unselected {
		t.Error("non-機車 vehicle must select the car branch")
	}
}

// Exactly one token per scheme may be selected, and both schemes must
// agree on which.
func TestRelationshipExclusivity(t *testing.T) {
	for _, category := range record.RelationshipCategories() {
		t.Run(category, func(t *testing.T) {
			tokens := Derive(record.Record{Relationship: category})

			selected := 0
			for i, c := range record.RelationshipCategories() {
				indexed := tokens[fmt.Sprintf("relationship_%d", i+1)]
				named := tokens["CHECK_RELATIONSHIP_"+c]
				if indexed != named {
					t.Errorf("schemes disagree on %s: %q vs %q", c, indexed, named)
				}
				if indexed == Selected {
					selected++
					if c != category {
						t.Errorf("selected %s, want %s", c, category)
					}
				}
			}
			if selected != 1 {
				t.Errorf("selected %d relationship tokens, want exactly 1", selected)
			}
		})
	}
}

func TestUnrecognizedRelationshipSelectsNothing(t *testing.T) {
	tokens := Derive(record.Record{Relationship: "朋友"})
	for name, v := range tokens {
		if len(name) > 12 && name[:13] == "relationship_" && v == Selected {
			t.Errorf("token %s selected for unrecognized relationship", name)
		}
	}
}

func TestPeriodPresenceTokens(t *testing.T) {
	tokens := Derive(record.Record{
		CompulsoryInsurancePeriod: "民國112年01月01日起",
		OptionalInsurancePeriod:   record.Unfilled,
	})
	if tokens["check_compulsory_insurance_period"] != Selected {
		t.Error("present compulsory period must be selected")
	}
	if tokens["check_optional_insurance_period"] != Unselected {
		t.Error("sentinel optional period must be unselected")
	}
}

func TestFixedTokens(t *testing.T) {
	tokens := Derive(record.Record{})
	if tokens["CHECK_1"] != Selected || tokens["CHECK_2"] != Selected {
		t.Error("CHECK_1 and CHECK_2 must always be selected")
	}
}
