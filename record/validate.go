package record

import (
	"fmt"
	"regexp"
)

// Report is the outcome of structural validation. Errors name required
// fields that are missing; Warnings flag values that look malformed but do
// not prevent rendering.
type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Valid    bool     `json:"is_valid"`
}

var (
	organizationIDShape = regexp.MustCompile(`^\d{8}$`)
	personalIDShape     = regexp.MustCompile(`^[A-Z]\d{9}$`)
)

// relationshipCategories are the eight recognized relationship values
// between policyholder and insured party, in template order.
var relationshipCategories = []string{
	"本人", "配偶", "父母", "子女", "雇傭", "祖孫", "債權債務", "標的物",
}

// RelationshipCategories returns the recognized relationship values in
// template order.
func RelationshipCategories() []string {
	out := make([]string, len(relationshipCategories))
	copy(out, relationshipCategories)
	return out
}

// Validate checks a record for missing required fields and malformed
// categorical values. Validation never blocks rendering; the report is
// surfaced alongside the filled document.
func Validate(r Record) Report {
	var rep Report

	required := []struct{ name, value string }{
		{"insured_person", r.InsuredPerson},
		{"policyholder", r.Policyholder},
		{"vehicle_type", r.VehicleType},
	}
	for _, f := range required {
		if IsBlank(f.value) {
			rep.Errors = append(rep.Errors, fmt.Sprintf("missing required field: %s", f.name))
		}
	}

	checkGender := func(name, value string) {
		if !IsBlank(value) && value != "男" && value != "女" {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("unexpected %s value: %s", name, value))
		}
	}
	checkGender("gender", r.Gender)
	checkGender("policyholder_gender", r.PolicyholderGender)

	if !IsBlank(r.Relationship) && !isRecognizedRelationship(r.Relationship) {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("unexpected relationship value: %s", r.Relationship))
	}

	checkID := func(name, value string) {
		if IsBlank(value) {
			return
		}
		if !organizationIDShape.MatchString(value) && !personalIDShape.MatchString(value) {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("unrecognized %s shape: %s", name, value))
		}
	}
	checkID("id_number", r.IDNumber)
	checkID("policyholder_id", r.PolicyholderID)

	rep.Valid = len(rep.Errors) == 0
	return rep
}

func isRecognizedRelationship(v string) bool {
	for _, c := range relationshipCategories {
		if v == c {
			return true
		}
	}
	return false
}
