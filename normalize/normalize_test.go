package normalize

import (
	"strings"
	"testing"

	"github.com/humtersiso/insurstar-ocr/record"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"minguo padded", "民國91年5月3日", "民國91年05月03日"},
		{"minguo already padded", "民國112年01月01日", "民國112年01月01日"},
		{"minguo with trailing time", "民國112年1月1日 12時", "民國112年01月01日 12時"},
		{"minguo invalid month", "民國91年13月3日", "民國91年13月3日"},
		{"western ymd slash", "2023/5/3", "2023/05/03"},
		{"western ymd dash", "2023-5-3", "2023/05/03"},
		{"western mdy", "5/3/2023", "2023/05/03"},
		{"compact", "20230503", "2023/05/03"},
		{"february 30th", "2023/02/30", "2023/02/30"},
		{"fullwidth digits", "２０２３/０５/０３", "2023/05/03"},
		{"garbage", "not a date", "not a date"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.input); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "1234567", "1,234,567"},
		{"already grouped", "1,234,567", "1,234,567"},
		{"currency prefix", "NT$1234", "1,234"},
		{"fullwidth digits", "１２３４", "1,234"},
		{"small", "42", "42"},
		{"no digits", "待確認", "待確認"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.input); got != tt.want {
				t.Errorf("FormatAmount(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Formatting an amount twice must equal formatting it once.
func TestFormatAmountIdempotent(t *testing.T) {
	for _, input := range []string{"1234567", "42", "NT$98765", "１２３４５"} {
		once := FormatAmount(input)
		if twice := FormatAmount(once); twice != once {
			t.Errorf("FormatAmount not idempotent on %q: %q then %q", input, once, twice)
		}
	}
}

func TestFormatIDNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"personal", "A123456789", "A123456789"},
		{"lowercase", "a123456789", "A123456789"},
		{"embedded separators", "A12345-6789", "A123456789"},
		{"fullwidth", "Ａ１２３４５６７８９", "A123456789"},
		{"organization", "12345678", "12345678"},
		{"wrong shape passes through", "A12345", "A12345"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatIDNumber(tt.input); got != tt.want {
				t.Errorf("FormatIDNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatLicenseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "ABC-1234-DEF", "ABC1234DEF"},
		{"lowercase folded", "abc-1234-def", "ABC1234DEF"},
		{"too short passes through", "AB-12", "AB-12"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLicenseNumber(tt.input); got != tt.want {
				t.Errorf("FormatLicenseNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapse whitespace", "  保險   公司  ", "保險 公司"},
		{"strip disallowed", "王小明※！", "王小明"},
		{"keeps separators", "2023/05/03 (三)", "2023/05/03 (三)"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProcessBlankFieldsBecomeSentinel(t *testing.T) {
	fields := Process(record.Record{InsuredPerson: "王小明"})

	if got := fields["insured_person"]; got != "王小明" {
		t.Errorf("insured_person = %q, want 王小明", got)
	}
	for name, v := range fields {
		if name == "insured_person" {
			continue
		}
		if v != record.Unfilled {
			t.Errorf("field %s = %q, want unfilled sentinel", name, v)
		}
	}
}

func TestProcessAppliesFieldKinds(t *testing.T) {
	rec := record.Record{
		BirthDate:     "民國80年7月1日",
		IDNumber:      "a123456789",
		LicenseNumber: "abc-1234-def",
	}
	fields := Process(rec)

	if got := fields["birth_date"]; got != "民國80年07月01日" {
		t.Errorf("birth_date = %q", got)
	}
	if got := fields["id_number"]; got != "A123456789" {
		t.Errorf("id_number = %q", got)
	}
	if got := fields["license_number"]; got != "ABC1234DEF" {
		t.Errorf("license_number = %q", got)
	}
	if got := fields["compulsory_insurance_period"]; got != record.Unfilled {
		t.Errorf("compulsory_insurance_period = %q", got)
	}
}

func TestTotalPremiumVerbatim(t *testing.T) {
	rec := record.Record{TotalPremium: "NT$ 12,345"}
	fields := Process(rec)
	if got := fields["total_premium"]; got != "NT$ 12,345" {
		t.Errorf("total_premium = %q, want verbatim", got)
	}
	if strings.Contains(fields["total_premium"], record.Unfilled) {
		t.Error("non-blank premium must not be rewritten")
	}
}
