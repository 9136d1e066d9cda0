// Package record defines the structured extraction record produced by the
// upstream recognition service, its JSON wire form, and structural
// validation of its contents.
package record

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/humtersiso/insurstar-ocr/coverage"
)

// Unfilled is the canonical sentinel for a field with no usable data. The
// recognition service emits it for unreadable fields, and normalization
// rewrites every blank result to it, so "explicitly blank" is always
// distinguishable from "not yet processed".
const Unfilled = "無填寫"

// Record is one extraction result for a single policy document. The scalar
// fields form a fixed, known schema; missing keys decode to "" and are
// treated as unfilled rather than raising.
type Record struct {
	InsuranceCompany                string          `json:"insurance_company"`
	InsuredSection                  string          `json:"insured_section"`
	InsuredPerson                   string          `json:"insured_person"`
	LegalRepresentative             string          `json:"legal_representative"`
	IDNumber                        string          `json:"id_number"`
	BirthDate                       string          `json:"birth_date"`
	Gender                          string          `json:"gender"`
	PolicyholderSection             string          `json:"policyholder_section"`
	Policyholder                    string          `json:"policyholder"`
	Relationship                    string          `json:"relationship"`
	PolicyholderLegalRepresentative string          `json:"policyholder_legal_representative"`
	PolicyholderGender              string          `json:"policyholder_gender"`
	PolicyholderID                  string          `json:"policyholder_id"`
	PolicyholderBirthDate           string          `json:"policyholder_birth_date"`
	VehicleType                     string          `json:"vehicle_type"`
	LicenseNumber                   string          `json:"license_number"`
	TotalPremium                    string          `json:"total_premium"`
	CompulsoryInsurancePeriod       string          `json:"compulsory_insurance_period"`
	OptionalInsurancePeriod         string          `json:"optional_insurance_period"`
	CoverageItems                   []coverage.Item `json:"coverage_items"`
}

// IsBlank reports whether a raw field value carries no usable data: empty,
// whitespace-only, or the unfilled sentinel.
func IsBlank(v string) bool {
	t := strings.TrimSpace(v)
	return t == "" || t == Unfilled
}

// Parse decodes a Record from its JSON wire form.
func Parse(data []byte) (Record, error) {
	var r Record
	if err := sonic.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("parsing extraction record: %w", err)
	}
	return r, nil
}

// Load reads and decodes a Record from a JSON file.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading extraction record: %w", err)
	}
	return Parse(data)
}

// Scalars returns the scalar fields keyed by their wire names. CoverageItems
// is not included; it is resolved through the coverage package instead.
func (r Record) Scalars() map[string]string {
	return map[string]string{
		"insurance_company":                 r.InsuranceCompany,
		"insured_section":                   r.InsuredSection,
		"insured_person":                    r.InsuredPerson,
		"legal_representative":              r.LegalRepresentative,
		"id_number":                         r.IDNumber,
		"birth_date":                        r.BirthDate,
		"gender":                            r.Gender,
		"policyholder_section":              r.PolicyholderSection,
		"policyholder":                      r.Policyholder,
		"relationship":                      r.Relationship,
		"policyholder_legal_representative": r.PolicyholderLegalRepresentative,
		"policyholder_gender":               r.PolicyholderGender,
		"policyholder_id":                   r.PolicyholderID,
		"policyholder_birth_date":           r.PolicyholderBirthDate,
		"vehicle_type":                      r.VehicleType,
		"license_number":                    r.LicenseNumber,
		"total_premium":                     r.TotalPremium,
		"compulsory_insurance_period":       r.CompulsoryInsurancePeriod,
		"optional_insurance_period":         r.OptionalInsurancePeriod,
	}
}
