package domain

import (
	"strings"

	"horsebox_backend/platform/apperr"
	"horsebox_backend/platform/phone"
)

// Configurator steps. The flow is strictly linear; backward navigation is
// always permitted, forward navigation is gated per step.
const (
	StepCustomer = 1
	StepVehicle  = 2
	StepDeposit  = 3
	StepOptions  = 4
	StepReview   = 5
)

// Advance moves to the next step when the current step's validation gate
// passes. On failure the configuration stays put and ValidationError carries a
// human-readable message. Returns whether the step changed.
func (c *Configuration) Advance() bool {
	if c.Step >= StepReview {
		return false
	}

	if msg := c.validateStep(c.Step); msg != "" {
		c.ValidationError = msg
		return false
	}

	c.ValidationError = ""
	c.Step++
	c.touch()
	return true
}

// Back moves to the previous step. Always permitted.
func (c *Configuration) Back() {
	if c.Step > StepCustomer {
		c.Step--
		c.ValidationError = ""
		c.touch()
	}
}

func (c *Configuration) validateStep(step int) string {
	switch step {
	case StepCustomer:
		if strings.TrimSpace(c.Customer.Name) == "" {
			return "please enter your name"
		}
		if !looksLikeEmail(c.Customer.Email) {
			return "please enter a valid email address"
		}
		if !phone.IsValid(c.Customer.Phone) {
			return "please enter a valid phone number"
		}
	case StepVehicle:
		if c.Model == nil {
			return "please choose a model"
		}
		if c.Model.Availability == AvailabilityContact {
			return "this model is available on request only, please contact us"
		}
		if c.Model.Availability == AvailabilityConfigurable && c.ChassisCostPence <= 0 {
			return "please enter the chassis cost"
		}
	case StepDeposit:
		if c.Model != nil && c.Model.Availability == AvailabilityConfigurable {
			if c.DepositPence <= 0 {
				return "please enter a deposit amount"
			}
			if c.DepositPence > c.Schedule.BuildWithVatPence {
				return "the deposit cannot exceed the build total"
			}
		}
	}
	return ""
}

// ValidateForSubmission runs every step gate in order. A configuration that
// passes can be turned into a lead.
func (c *Configuration) ValidateForSubmission() error {
	for step := StepCustomer; step < StepReview; step++ {
		if msg := c.validateStep(step); msg != "" {
			return apperr.Validation(msg)
		}
	}
	return nil
}

func looksLikeEmail(value string) bool {
	trimmed := strings.TrimSpace(value)
	at := strings.Index(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 {
		return false
	}
	return strings.Contains(trimmed[at+1:], ".")
}
