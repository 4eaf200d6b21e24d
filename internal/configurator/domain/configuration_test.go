package domain

import "testing"

func TestSetModel_ResetsOptionsAndPackage(t *testing.T) {
	cfg := NewConfiguration(500000)
	cfg.SetModel(configurableModel(1850000))
	cfg.AddOption(CatalogOption{Slug: "awning", Name: "Awning", PricePence: 120000}, 1, nil)
	cfg.SetPioneerPackage(true, "long", pioneerCatalog(), pioneerDef())

	other := configurableModel(2200000)
	other.Slug = "aeos-qv-st"
	other.Name = "Aeos QV ST"
	cfg.SetModel(other)

	if len(cfg.SelectedOptions) != 0 {
		t.Fatalf("expected options cleared on model switch, got %d", len(cfg.SelectedOptions))
	}
	if cfg.PioneerPackage {
		t.Fatal("expected package flag cleared on model switch")
	}
	if cfg.Totals.BuildSubtotalPence != 2200000 {
		t.Fatalf("expected totals recomputed from new base price, got %d", cfg.Totals.BuildSubtotalPence)
	}
}

func TestUpdateOptionQuantity_PreservesItemCount(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.SetModel(configurableModel(1850000))
	cfg.AddOption(CatalogOption{Slug: "awning", Name: "Awning", PricePence: 120000}, 1, nil)
	cfg.AddOption(CatalogOption{Slug: "roof-vent", Name: "Roof Vent", PricePence: 50000}, 1, nil)

	cfg.UpdateOptionQuantity("roof-vent", 4)

	if len(cfg.SelectedOptions) != 2 {
		t.Fatalf("expected 2 options, got %d", len(cfg.SelectedOptions))
	}
	if got := cfg.findOption("roof-vent").Quantity; got != 4 {
		t.Fatalf("expected quantity 4, got %d", got)
	}
	if got := cfg.findOption("awning").Quantity; got != 1 {
		t.Fatalf("other item's quantity changed: %d", got)
	}
}

func TestUpdateOptionQuantity_NegativeClampsToZero(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.SetModel(configurableModel(1850000))
	cfg.AddOption(CatalogOption{Slug: "awning", Name: "Awning", PricePence: 120000}, 1, nil)

	cfg.UpdateOptionQuantity("awning", -3)

	if got := cfg.findOption("awning").Quantity; got != 0 {
		t.Fatalf("expected clamped quantity 0, got %d", got)
	}
	if cfg.Totals.OptionsTotalPence != 0 {
		t.Fatalf("quantity 0 must not contribute to totals, got %d", cfg.Totals.OptionsTotalPence)
	}
}

func TestRemoveOption_UnknownSlugIsNoOp(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.SetModel(configurableModel(1850000))
	cfg.AddOption(CatalogOption{Slug: "awning", Name: "Awning", PricePence: 120000}, 1, nil)

	cfg.RemoveOption("does-not-exist")

	if len(cfg.SelectedOptions) != 1 {
		t.Fatalf("expected 1 option, got %d", len(cfg.SelectedOptions))
	}
}

func TestPackageLockedOptions_RefuseIndependentEdits(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.SetModel(configurableModel(1850000))
	cfg.SetPioneerPackage(true, "long", pioneerCatalog(), pioneerDef())

	cfg.RemoveOption("side-windows")
	if cfg.findOption("side-windows") == nil {
		t.Fatal("package-locked option was removed")
	}
	if cfg.ValidationError == "" {
		t.Fatal("expected validation error for locked removal")
	}

	cfg.UpdateOptionQuantity("side-windows", 5)
	if got := cfg.findOption("side-windows").Quantity; got != 2 {
		t.Fatalf("package-locked quantity changed to %d", got)
	}
	if cfg.ValidationError == "" {
		t.Fatal("expected validation error for locked quantity edit")
	}
}

func TestValidationError_ClearsOnNextSuccessfulMutation(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.SetModel(configurableModel(1850000))
	cfg.SetPioneerPackage(true, "long", pioneerCatalog(), pioneerDef())

	cfg.RemoveOption("side-windows")
	if cfg.ValidationError == "" {
		t.Fatal("expected validation error for locked removal")
	}

	cfg.SetChassisCost(2000000)
	if cfg.ValidationError != "" {
		t.Fatalf("stale validation error after successful mutation: %q", cfg.ValidationError)
	}

	cfg.UpdateOptionQuantity("side-windows", 5)
	if cfg.ValidationError == "" {
		t.Fatal("expected validation error for locked quantity edit")
	}

	cfg.AddOption(CatalogOption{Slug: "awning", Name: "Awning", PricePence: 120000}, 1, nil)
	if cfg.ValidationError != "" {
		t.Fatalf("stale validation error after adding an option: %q", cfg.ValidationError)
	}
}

func TestSetModel_ClearsWarnings(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.SetModel(configurableModel(1850000))
	cfg.AddOption(CatalogOption{Slug: "rear-camera", Name: "Rear Camera", PricePence: 35000, Requires: []string{"leisure-battery"}}, 1, nil)
	if len(cfg.Warnings) == 0 {
		t.Fatal("expected a warning for the unresolved requirement")
	}

	other := configurableModel(2200000)
	other.Slug = "aeos-qv-st"
	other.Name = "Aeos QV ST"
	cfg.SetModel(other)

	if len(cfg.Warnings) != 0 {
		t.Fatalf("warnings survived the model switch: %v", cfg.Warnings)
	}
}

func TestAddOption_OverwritesExistingQuantity(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.SetModel(configurableModel(1850000))
	opt := CatalogOption{Slug: "awning", Name: "Awning", PricePence: 120000}

	cfg.AddOption(opt, 1, nil)
	cfg.AddOption(opt, 3, nil)

	if len(cfg.SelectedOptions) != 1 {
		t.Fatalf("expected upsert, got %d options", len(cfg.SelectedOptions))
	}
	if got := cfg.findOption("awning").Quantity; got != 3 {
		t.Fatalf("expected quantity overwritten to 3, got %d", got)
	}
}

func TestReset_RestoresInitialState(t *testing.T) {
	cfg := NewConfiguration(500000)
	cfg.SetModel(configurableModel(1850000))
	cfg.SetChassisCost(2000000)
	cfg.SetDeposit(750000)
	cfg.Step = StepOptions
	cfg.ValidationError = "stale"

	cfg.Reset()

	if cfg.Model != nil || len(cfg.SelectedOptions) != 0 {
		t.Fatalf("expected empty configuration, got %+v", cfg)
	}
	if cfg.DepositPence != 500000 {
		t.Fatalf("expected default deposit restored, got %d", cfg.DepositPence)
	}
	if cfg.Step != StepCustomer || cfg.ValidationError != "" {
		t.Fatalf("expected step 1 and no error, got step %d %q", cfg.Step, cfg.ValidationError)
	}
}

func TestSnapshot_RequiresModel(t *testing.T) {
	cfg := NewConfiguration(0)

	if _, err := cfg.Snapshot(); err == nil {
		t.Fatal("expected error for snapshot without model")
	}

	cfg.SetModel(configurableModel(1850000))
	snap, err := cfg.Snapshot()
	if err != nil {
		t.Fatalf("unexpected snapshot error: %v", err)
	}
	if snap.ModelSlug != "aeos-qv-45" || snap.BasePricePence != 1850000 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSnapshot_IsDetachedFromLiveState(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.SetModel(configurableModel(1850000))
	cfg.AddOption(CatalogOption{Slug: "awning", Name: "Awning", PricePence: 120000}, 1, nil)

	snap, err := cfg.Snapshot()
	if err != nil {
		t.Fatalf("unexpected snapshot error: %v", err)
	}

	cfg.UpdateOptionQuantity("awning", 9)

	if snap.SelectedOptions[0].Quantity != 1 {
		t.Fatalf("snapshot mutated by later edits: %+v", snap.SelectedOptions[0])
	}
}
