package domain

import "testing"

func readyCustomer() CustomerInfo {
	return CustomerInfo{Name: "Jo Bloggs", Email: "jo@example.com", Phone: "+447911123456"}
}

func TestAdvance_CustomerStepRequiresContactFields(t *testing.T) {
	cases := []struct {
		name     string
		customer CustomerInfo
		want     bool
	}{
		{"all present", readyCustomer(), true},
		{"missing name", CustomerInfo{Email: "jo@example.com", Phone: "+447911123456"}, false},
		{"bad email", CustomerInfo{Name: "Jo", Email: "not-an-email", Phone: "+447911123456"}, false},
		{"email without domain dot", CustomerInfo{Name: "Jo", Email: "jo@example", Phone: "+447911123456"}, false},
		{"bad phone", CustomerInfo{Name: "Jo", Email: "jo@example.com", Phone: "123"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfiguration(0)
			cfg.Customer = tc.customer

			got := cfg.Advance()
			if got != tc.want {
				t.Fatalf("Advance() = %v, want %v (error %q)", got, tc.want, cfg.ValidationError)
			}
			if !tc.want && cfg.ValidationError == "" {
				t.Fatal("expected a validation message when blocked")
			}
			if tc.want && cfg.Step != StepVehicle {
				t.Fatalf("expected step 2, got %d", cfg.Step)
			}
		})
	}
}

func TestAdvance_VehicleStepRequiresModelAndChassis(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.Customer = readyCustomer()
	cfg.Step = StepVehicle

	if cfg.Advance() {
		t.Fatal("expected block without a model")
	}

	cfg.SetModel(configurableModel(1850000))
	cfg.Step = StepVehicle
	if cfg.Advance() {
		t.Fatal("expected block without chassis cost for configurable model")
	}

	cfg.SetChassisCost(2000000)
	cfg.Step = StepVehicle
	if !cfg.Advance() {
		t.Fatalf("expected advance with model and chassis, error %q", cfg.ValidationError)
	}
}

func TestAdvance_PrebuiltModelSkipsChassisRequirement(t *testing.T) {
	model := configurableModel(1850000)
	model.Availability = AvailabilityPrebuilt

	cfg := NewConfiguration(0)
	cfg.Customer = readyCustomer()
	cfg.SetModel(model)
	cfg.Step = StepVehicle

	if !cfg.Advance() {
		t.Fatalf("expected prebuilt model to pass without chassis, error %q", cfg.ValidationError)
	}

	// Deposit gate is also waived for non-configurable models.
	if !cfg.Advance() {
		t.Fatalf("expected deposit step waived for prebuilt model, error %q", cfg.ValidationError)
	}
}

func TestAdvance_ContactOnlyModelBlocked(t *testing.T) {
	model := configurableModel(0)
	model.BasePricePence = nil
	model.Availability = AvailabilityContact

	cfg := NewConfiguration(0)
	cfg.Customer = readyCustomer()
	cfg.SetModel(model)
	cfg.Step = StepVehicle

	if cfg.Advance() {
		t.Fatal("expected contact-only model to block the vehicle step")
	}
}

func TestAdvance_DepositStepBlocksZeroDeposit(t *testing.T) {
	// A configurable model needs a positive deposit to leave step 3.
	cfg := NewConfiguration(0)
	cfg.Customer = readyCustomer()
	cfg.SetModel(configurableModel(1850000))
	cfg.SetChassisCost(2000000)
	cfg.SetDeposit(0)
	cfg.Step = StepDeposit

	if cfg.Advance() {
		t.Fatal("expected zero deposit to block step 3")
	}
	if cfg.ValidationError == "" {
		t.Fatal("expected non-empty validation message")
	}

	cfg.SetDeposit(500000)
	if !cfg.Advance() {
		t.Fatalf("expected advance with valid deposit, error %q", cfg.ValidationError)
	}
}

func TestBack_AlwaysPermittedAndClearsError(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.Step = StepOptions
	cfg.ValidationError = "stale"

	cfg.Back()

	if cfg.Step != StepDeposit {
		t.Fatalf("expected step 3, got %d", cfg.Step)
	}
	if cfg.ValidationError != "" {
		t.Fatal("expected error cleared on back navigation")
	}

	cfg.Step = StepCustomer
	cfg.Back()
	if cfg.Step != StepCustomer {
		t.Fatalf("expected to stay at step 1, got %d", cfg.Step)
	}
}

func TestAdvance_NoSkipAheadPastReview(t *testing.T) {
	cfg := NewConfiguration(0)
	cfg.Step = StepReview

	if cfg.Advance() {
		t.Fatal("expected no advance past review")
	}
	if cfg.Step != StepReview {
		t.Fatalf("step moved past review: %d", cfg.Step)
	}
}
