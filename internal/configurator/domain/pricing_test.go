package domain

import "testing"

func pricePtr(v int64) *int64 { return &v }

func configurableModel(basePence int64) *ModelSnapshot {
	return &ModelSnapshot{
		Slug:            "aeos-qv-45",
		Name:            "Aeos QV 4.5",
		BasePricePence:  pricePtr(basePence),
		VatRateBps:      2000,
		WeightClass:     "4.5t",
		Availability:    AvailabilityConfigurable,
		PioneerEligible: true,
	}
}

func TestCalculateTotals_BaseOnly(t *testing.T) {
	cfg := NewConfiguration(500000)
	cfg.SetModel(configurableModel(1850000))

	if cfg.Totals.OptionsTotalPence != 0 {
		t.Fatalf("expected options total 0, got %d", cfg.Totals.OptionsTotalPence)
	}
	if cfg.Totals.BuildSubtotalPence != 1850000 {
		t.Fatalf("expected build subtotal 1850000, got %d", cfg.Totals.BuildSubtotalPence)
	}
	if cfg.Totals.TotalExVatPence != 1850000 {
		t.Fatalf("expected total ex VAT 1850000, got %d", cfg.Totals.TotalExVatPence)
	}
	if cfg.Totals.VatAmountPence != 370000 {
		t.Fatalf("expected VAT 370000, got %d", cfg.Totals.VatAmountPence)
	}
	if cfg.Totals.TotalIncVatPence != 2220000 {
		t.Fatalf("expected total inc VAT 2220000, got %d", cfg.Totals.TotalIncVatPence)
	}
}

func TestCalculateTotals_WithOptionQuantity(t *testing.T) {
	cfg := NewConfiguration(500000)
	cfg.SetModel(configurableModel(1850000))

	cfg.AddOption(CatalogOption{Slug: "roof-vent", Name: "Roof Vent", PricePence: 50000}, 2, nil)

	if cfg.Totals.OptionsTotalPence != 100000 {
		t.Fatalf("expected options total 100000, got %d", cfg.Totals.OptionsTotalPence)
	}
	if cfg.Totals.BuildSubtotalPence != 1950000 {
		t.Fatalf("expected build subtotal 1950000, got %d", cfg.Totals.BuildSubtotalPence)
	}
}

func TestCalculateTotals_ChassisAffectsExVat(t *testing.T) {
	cfg := NewConfiguration(500000)
	cfg.SetModel(configurableModel(1850000))
	cfg.SetChassisCost(2000000)

	if cfg.Totals.BuildSubtotalPence != 1850000 {
		t.Fatalf("chassis must not affect build subtotal, got %d", cfg.Totals.BuildSubtotalPence)
	}
	if cfg.Totals.TotalExVatPence != 3850000 {
		t.Fatalf("expected total ex VAT 3850000, got %d", cfg.Totals.TotalExVatPence)
	}
}

func TestCalculateTotals_NoModelZeroesEverything(t *testing.T) {
	cfg := NewConfiguration(500000)
	cfg.SetModel(configurableModel(1850000))
	cfg.AddOption(CatalogOption{Slug: "roof-vent", Name: "Roof Vent", PricePence: 50000}, 1, nil)
	cfg.SetChassisCost(2000000)

	cfg.SetModel(nil)

	if cfg.Totals != (Totals{}) {
		t.Fatalf("expected zeroed totals with no model, got %+v", cfg.Totals)
	}
	if cfg.Schedule != (PaymentSchedule{}) {
		t.Fatalf("expected zeroed schedule with no model, got %+v", cfg.Schedule)
	}
}

func TestVatIdentity_HoldsAcrossInputs(t *testing.T) {
	cases := []struct {
		name    string
		base    int64
		chassis int64
		price   int64
		qty     int
	}{
		{"round numbers", 1850000, 0, 0, 0},
		{"odd pence", 1234567, 765431, 33333, 3},
		{"penny amounts", 1, 1, 1, 1},
		{"large build", 9999999, 5500000, 123456, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfiguration(0)
			cfg.SetModel(configurableModel(tc.base))
			cfg.SetChassisCost(tc.chassis)
			if tc.qty > 0 {
				cfg.AddOption(CatalogOption{Slug: "x", Name: "X", PricePence: tc.price}, tc.qty, nil)
			}

			got := cfg.Totals
			if got.TotalIncVatPence-got.TotalExVatPence != got.VatAmountPence {
				t.Errorf("VAT identity broken: inc %d − ex %d != vat %d",
					got.TotalIncVatPence, got.TotalExVatPence, got.VatAmountPence)
			}
			if got.TotalExVatPence != got.BuildSubtotalPence+tc.chassis {
				t.Errorf("ex VAT %d != subtotal %d + chassis %d",
					got.TotalExVatPence, got.BuildSubtotalPence, tc.chassis)
			}
		})
	}
}

func TestRecalculate_Idempotent(t *testing.T) {
	cfg := NewConfiguration(500000)
	cfg.SetModel(configurableModel(1850000))
	cfg.AddOption(CatalogOption{Slug: "awning", Name: "Awning", PricePence: 120000}, 1, nil)
	cfg.SetChassisCost(2000000)

	first := cfg.Totals
	cfg.Recalculate()
	cfg.Recalculate()

	if cfg.Totals != first {
		t.Fatalf("recalculate is not idempotent: %+v vs %+v", first, cfg.Totals)
	}
}
