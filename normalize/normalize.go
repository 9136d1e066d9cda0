// Package normalize cleans and formats the scalar fields of an extraction
// record. Every formatter is pure and total: a value that fails to match the
// expected shape passes through unchanged rather than being lost.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/width"

	"github.com/humtersiso/insurstar-ocr/record"
)

// Fields holds normalized scalar values keyed by their wire names.
type Fields map[string]string

// Kind selects which formatter applies to a field.
type Kind int

const (
	KindText Kind = iota // whitespace collapse + character allow-list
	KindAmount           // thousands-separated integer
	KindDate             // Republic-calendar or western date
	KindIdentifier       // personal ID or organization number
	KindLicense          // vehicle registration number
	KindPeriod           // insurance period, kept verbatim or sentinel
	KindVerbatim         // no formatting at all
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Allow-list for free text: CJK ideographs, ASCII letters and digits,
	// whitespace, and the separators policy documents use.
	disallowedChar = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}a-zA-Z0-9\s\-.,:/()]`)
	nonAlnum       = regexp.MustCompile(`[^A-Za-z0-9]`)
	nonDigit       = regexp.MustCompile(`[^0-9]`)

	organizationID = regexp.MustCompile(`^\d{8}$`)
	personalID     = regexp.MustCompile(`^[A-Z]\d{9}$`)

	// 民國Y年M月D日, optionally followed by time text that is kept verbatim.
	minguoDate     = regexp.MustCompile(`^民國(\d{2,3})年(\d{1,2})月(\d{1,2})日(.*)$`)
	westernYMDDate = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	westernMDYDate = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{4})`)
	compactDate    = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
)

// amountPrinter renders integers with thousands separators.
var amountPrinter = message.NewPrinter(language.English)

// fieldKinds maps wire names to formatters. Unlisted fields are free text.
// total_premium is deliberately verbatim: the upstream value may carry a
// currency prefix the report layout expects untouched.
var fieldKinds = map[string]Kind{
	"license_number":              KindLicense,
	"birth_date":                  KindDate,
	"policyholder_birth_date":     KindDate,
	"id_number":                   KindIdentifier,
	"policyholder_id":             KindIdentifier,
	"compulsory_insurance_period": KindPeriod,
	"optional_insurance_period":   KindPeriod,
	"total_premium":               KindVerbatim,
}

// Normalize applies the formatter for kind to a raw value.
func Normalize(raw string, kind Kind) string {
	switch kind {
	case KindAmount:
		return FormatAmount(raw)
	case KindDate:
		return FormatDate(raw)
	case KindIdentifier:
		return FormatIDNumber(raw)
	case KindLicense:
		return FormatLicenseNumber(raw)
	case KindPeriod:
		return FormatPeriod(raw)
	case KindVerbatim:
		return raw
	default:
		return CleanText(raw)
	}
}

// Process normalizes every scalar field of a record. Any field whose
// normalized value is blank is rewritten to the unfilled sentinel.
func Process(rec record.Record) Fields {
	fields := make(Fields, len(fieldKinds)+12)
	for name, raw := range rec.Scalars() {
		v := Normalize(raw, fieldKinds[name])
		if strings.TrimSpace(v) == "" {
			v = record.Unfilled
		}
		fields[name] = v
	}
	return fields
}

// CleanText collapses whitespace runs to a single space and strips
// characters outside the allow-list.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	return disallowedChar.ReplaceAllString(text, "")
}

// FormatIDNumber canonicalizes a personal ID or organization number: strip
// non-alphanumerics, uppercase, then accept only the two recognized shapes
// (one letter + nine digits, or eight digits). Anything else passes through
// unchanged so a misread is still visible on the report.
func FormatIDNumber(id string) string {
	if id == "" {
		return ""
	}
	cleaned := strings.ToUpper(nonAlnum.ReplaceAllString(width.Narrow.String(id), ""))
	if organizationID.MatchString(cleaned) || personalID.MatchString(cleaned) {
		return cleaned
	}
	return id
}

// FormatLicenseNumber canonicalizes a vehicle registration number: strip
// non-alphanumerics and uppercase, accepted when the result has a plausible
// length. Otherwise the raw value passes through unchanged.
func FormatLicenseNumber(license string) string {
	if license == "" {
		return ""
	}
	cleaned := strings.ToUpper(nonAlnum.ReplaceAllString(width.Narrow.String(license), ""))
	if len(cleaned) >= 8 && len(cleaned) <= 20 {
		return cleaned
	}
	return license
}

// FormatAmount strips everything but digits (folding full-width digits
// first) and re-renders the value with thousands separators. Idempotent on
// already-separated amounts. A value with no digits passes through.
func FormatAmount(amount string) string {
	if amount == "" {
		return ""
	}
	folded := whitespaceRun.ReplaceAllString(width.Narrow.String(amount), "")
	cleaned := nonDigit.ReplaceAllString(folded, "")
	if cleaned == "" {
		return amount
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return amount
	}
	return amountPrinter.Sprintf("%d", n)
}

// FormatDate tries, in order: the Republic-calendar long form (preserved in
// Republic form, month and day zero-padded, trailing time text kept), then
// western slash/dash forms, then the compact 8-digit form. The first pattern
// that matches and names a calendar-valid date wins; otherwise the raw value
// passes through unchanged.
func FormatDate(date string) string {
	if date == "" {
		return ""
	}
	trimmed := strings.TrimSpace(width.Narrow.String(date))

	if m := minguoDate.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		// Republic year 1 is 1912 CE.
		if validDate(year+1911, month, day) {
			return fmt.Sprintf("民國%d年%02d月%02d日%s", year, month, day, m[4])
		}
	}

	patterns := []struct {
		re  *regexp.Regexp
		ymd bool
	}{
		{westernYMDDate, true},
		{westernMDYDate, false},
		{compactDate, true},
	}
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		var year, month, day int
		if p.ymd {
			year, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			day, _ = strconv.Atoi(m[3])
		} else {
			month, _ = strconv.Atoi(m[1])
			day, _ = strconv.Atoi(m[2])
			year, _ = strconv.Atoi(m[3])
		}
		if validDate(year, month, day) {
			return fmt.Sprintf("%04d/%02d/%02d", year, month, day)
		}
	}

	return date
}

// FormatPeriod keeps an insurance period verbatim; a blank period becomes
// the unfilled sentinel.
func FormatPeriod(period string) string {
	trimmed := strings.TrimSpace(period)
	if trimmed == "" {
		return record.Unfilled
	}
	return trimmed
}

// validDate reports whether the components name a real calendar date.
// time.Date normalizes out-of-range components, so a round-trip comparison
// catches e.g. February 30th.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
