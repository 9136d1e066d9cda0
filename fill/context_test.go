package fill

import (
	"testing"

	"github.com/humtersiso/insurstar-ocr/config"
	"github.com/humtersiso/insurstar-ocr/coverage"
	"github.com/humtersiso/insurstar-ocr/docx"
	"github.com/humtersiso/insurstar-ocr/record"
)

func assembleText(t *testing.T, rec record.Record) map[string]string {
	t.Helper()
	cfg := config.Default()
	cfg.WatermarkNamePath = ""
	cfg.WatermarkCompanyPath = ""
	_, processed := NewAssembler(cfg, nil).Assemble(rec)
	return processed
}

func TestAssembleBlankEchoesBecomePlaceholder(t *testing.T) {
	processed := assembleText(t, record.Record{InsuredPerson: "王小明"})

	for _, name := range []string{"gender", "policyholder_gender", "relationship", "vehicle_type"} {
		if got := processed[name]; got != "□" {
			t.Errorf("%s = %q, want blank placeholder glyph", name, got)
		}
	}
	// Non-echo blanks keep the sentinel.
	if got := processed["policyholder"]; got != record.Unfilled {
		t.Errorf("policyholder = %q, want unfilled sentinel", got)
	}
}

func TestAssembleNonBlankEchoesKeepValue(t *testing.T) {
	processed := assembleText(t, record.Record{Gender: "男", Relationship: "本人"})
	if processed["gender"] != "男" || processed["relationship"] != "本人" {
		t.Errorf("echoes rewritten: gender=%q relationship=%q",
			processed["gender"], processed["relationship"])
	}
}

func TestAssembleAmounts(t *testing.T) {
	rec := record.Record{
		OptionalInsurancePeriod: "民國112年01月01日起",
		CoverageItems: []coverage.Item{
			{TypeName: "車體損失保險乙式", InsuredAmount: "40.2萬"},
		},
	}
	processed := assembleText(t, rec)

	if got := processed["optional_insurance_amount"]; got != "40.2" {
		t.Errorf("optional_insurance_amount = %q, want 40.2", got)
	}
	if got := processed["compulsory_insurance_amount"]; got != "" {
		t.Errorf("compulsory_insurance_amount = %q, want empty", got)
	}
}

func TestAssembleCompulsoryOnlyAmountStaysEmpty(t *testing.T) {
	rec := record.Record{
		CompulsoryInsurancePeriod: "民國112年01月01日起",
		CoverageItems: []coverage.Item{
			{TypeName: "車體損失保險乙式", InsuredAmount: "40.2萬"},
		},
	}
	processed := assembleText(t, rec)
	if got := processed["optional_insurance_amount"]; got != "" {
		t.Errorf("optional_insurance_amount = %q, want empty", got)
	}
}

func TestAssembleFixedAndDerivedValues(t *testing.T) {
	processed := assembleText(t, record.Record{Gender: "女"})

	if got := processed["PCN"]; got != "BB2H699299" {
		t.Errorf("PCN = %q", got)
	}
	if processed["gender_female"] != "☑ " || processed["gender_male"] != "□" {
		t.Errorf("gender tokens = %q / %q",
			processed["gender_female"], processed["gender_male"])
	}
	if processed["CHECK_1"] != "☑ " {
		t.Errorf("CHECK_1 = %q", processed["CHECK_1"])
	}
}

func TestAssembleCoverageSummary(t *testing.T) {
	rec := record.Record{
		CoverageItems: []coverage.Item{
			{TypeName: "車體損失保險乙式"},
			{TypeName: "第三人傷害責任險"},
		},
	}
	processed := assembleText(t, rec)
	if got := processed["coverage_items"]; got != "車體損失保險乙式、第三人傷害責任險" {
		t.Errorf("coverage_items = %q", got)
	}
}

// A missing watermark asset must not fail assembly; its marker just has
// no value.
func TestAssembleMissingWatermarkSkipped(t *testing.T) {
	cfg := config.Default()
	cfg.WatermarkNamePath = "/nonexistent/watermark.png"
	cfg.WatermarkCompanyPath = ""

	ctx, _ := NewAssembler(cfg, nil).Assemble(record.Record{})
	if _, ok := ctx["watermark_name_blue"]; ok {
		t.Error("missing asset must leave the marker without a value")
	}
}

func TestAssembleContextValues(t *testing.T) {
	cfg := config.Default()
	cfg.WatermarkNamePath = ""
	cfg.WatermarkCompanyPath = ""

	ctx, processed := NewAssembler(cfg, nil).Assemble(record.Record{InsuredPerson: "王小明"})
	v, ok := ctx["insured_person"]
	if !ok {
		t.Fatal("insured_person missing from context")
	}
	if text, ok := v.(docx.Text); !ok || string(text) != "王小明" {
		t.Errorf("context value = %#v", v)
	}
	if len(ctx) != len(processed) {
		t.Errorf("context size %d != processed size %d without images", len(ctx), len(processed))
	}
}
