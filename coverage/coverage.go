// Package coverage models the covered-risk table of a policy and resolves
// amounts from it with the fallback rules the analysis report requires.
package coverage

import "strings"

// Item is one line of a policy's covered-risk table. A parent item either
// carries its own insured amount or defers to the per-incident amounts of its
// sub-items; sub-items never nest further.
type Item struct {
	Code          string `json:"保險代號,omitempty"`
	TypeName      string `json:"保險種類"`
	InsuredAmount string `json:"保險金額"`
	Deductible    string `json:"自負額"`
	Premium       string `json:"簽單保費"`
	SubItems      []Item `json:"sub_items,omitempty"`
}

// Coverage type names the derived-amount policy keys on. These match the
// headings printed on policy schedules, so substring containment is used
// rather than equality ("車體損失保險乙式(Q)" still matches).
const (
	vehicleDamageType       = "車體損失保險"
	thirdPartyLiabilityType = "第三人傷害責任險"
	perPersonInjuryType     = "每一個人傷害"
)

// FindAmountByType returns the insured amount of the first top-level item
// whose type name contains typeSubstring, or "" when no item matches.
func FindAmountByType(items []Item, typeSubstring string) string {
	for _, item := range items {
		if strings.Contains(item.TypeName, typeSubstring) {
			return item.InsuredAmount
		}
	}
	return ""
}

// FindSubItemAmountByType locates the first top-level item whose type name
// contains parentSubstring, then returns the insured amount of its first
// sub-item whose type name contains subSubstring. "" on any miss.
func FindSubItemAmountByType(items []Item, parentSubstring, subSubstring string) string {
	for _, item := range items {
		if !strings.Contains(item.TypeName, parentSubstring) {
			continue
		}
		for _, sub := range item.SubItems {
			if strings.Contains(sub.TypeName, subSubstring) {
				return sub.InsuredAmount
			}
		}
	}
	return ""
}

// OptionalAmount derives the optional-coverage amount printed on the report.
//
// With only a compulsory period present the amount stays empty: compulsory
// coverage has a statutory amount that is never copied into this cell. With
// an optional period present, the vehicle-damage amount wins (its unit suffix
// stripped); the per-person third-party injury amount is the fallback.
func OptionalAmount(items []Item, hasCompulsory, hasOptional bool) string {
	switch {
	case hasCompulsory && !hasOptional:
		return ""
	case hasOptional:
		if amount := FindAmountByType(items, vehicleDamageType); amount != "" {
			return trimUnitSuffix(amount)
		}
		return FindSubItemAmountByType(items, thirdPartyLiabilityType, perPersonInjuryType)
	default:
		return ""
	}
}

// trimUnitSuffix removes a single trailing 萬/万 unit rune. Schedules print
// amounts like "40.2萬"; the report cell carries its own unit label.
func trimUnitSuffix(s string) string {
	for _, unit := range []string{"萬", "万"} {
		if strings.HasSuffix(s, unit) {
			return strings.TrimSuffix(s, unit)
		}
	}
	return s
}
