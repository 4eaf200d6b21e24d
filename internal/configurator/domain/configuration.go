// Package domain holds the configurator session state and the pricing rules
// that derive totals and the payment schedule from it. The package does no I/O:
// catalogs are passed in as plain slices and every mutator runs to completion
// before control returns to the caller.
package domain

import (
	"time"

	"horsebox_backend/platform/apperr"
)

// Availability describes how a model can be purchased.
type Availability string

const (
	// AvailabilityConfigurable models go through the full configurator flow.
	AvailabilityConfigurable Availability = "configurable"
	// AvailabilityPrebuilt models are sold as built, with limited options.
	AvailabilityPrebuilt Availability = "prebuilt"
	// AvailabilityContact models have no published price and are not configurable.
	AvailabilityContact Availability = "contact"
)

// ModelSnapshot is the slice of model reference data the configurator needs.
// BasePricePence is nil for contact-only models.
type ModelSnapshot struct {
	Slug            string       `json:"slug"`
	Name            string       `json:"name"`
	BasePricePence  *int64       `json:"basePricePence"`
	VatRateBps      int          `json:"vatRateBps"`
	WeightClass     string       `json:"weightClass"`
	Availability    Availability `json:"availability"`
	PioneerEligible bool         `json:"pioneerEligible"`
}

// CatalogOption is a purchasable option as supplied by the catalog provider.
// Requires lists option slugs that must be selected alongside this option.
type CatalogOption struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	PricePence  int64    `json:"pricePence"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	PricingType string   `json:"pricingType"`
	Requires    []string `json:"requires,omitempty"`
}

// CustomerInfo holds the contact fields captured in step 1.
type CustomerInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AgentName string `json:"agentName"`
}

// SelectedOption is a line item on the configuration. Quantity 0 is equivalent
// to absence. FromPackage items were auto-added by the Pioneer Package and are
// locked while the package is active.
type SelectedOption struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	PricePence  int64  `json:"pricePence"`
	Quantity    int    `json:"quantity"`
	Category    string `json:"category"`
	FromPackage bool   `json:"fromPackage"`
}

// Totals are the derived pricing fields. Fully recomputed on every mutation.
type Totals struct {
	OptionsTotalPence  int64 `json:"optionsTotalPence"`
	BuildSubtotalPence int64 `json:"buildSubtotalPence"`
	TotalExVatPence    int64 `json:"totalExVatPence"`
	VatAmountPence     int64 `json:"vatAmountPence"`
	TotalIncVatPence   int64 `json:"totalIncVatPence"`
}

// PaymentSchedule is the derived deposit/first/second/final split.
// The chassis (with VAT) is added entirely to the first payment.
type PaymentSchedule struct {
	DepositPence                  int64 `json:"depositPence"`
	FirstPaymentPence             int64 `json:"firstPaymentPence"`
	SecondPaymentPence            int64 `json:"secondPaymentPence"`
	FinalPaymentPence             int64 `json:"finalPaymentPence"`
	ChassisWithVatPence           int64 `json:"chassisWithVatPence"`
	BuildWithVatPence             int64 `json:"buildWithVatPence"`
	BuildBalanceMinusDepositPence int64 `json:"buildBalanceMinusDepositPence"`
}

// Configuration is the session aggregate: the single source of truth for an
// in-progress build. Derived fields (Totals, Schedule) are never persisted as
// authoritative; they are recomputed after every mutation and on load.
type Configuration struct {
	Customer            CustomerInfo     `json:"customer"`
	Model               *ModelSnapshot   `json:"model,omitempty"`
	ChassisCostPence    int64            `json:"chassisCostPence"`
	DepositPence        int64            `json:"depositPence"`
	DefaultDepositPence int64            `json:"defaultDepositPence"`
	Color               string           `json:"color"`
	PioneerPackage      bool             `json:"pioneerPackage"`
	PioneerVariant      string           `json:"pioneerVariant,omitempty"`
	PioneerPricePence   int64            `json:"pioneerPricePence,omitempty"`
	SelectedOptions     []SelectedOption `json:"selectedOptions"`
	Step                int              `json:"step"`
	// ValidationError is the most recent refused-edit or step-gate message.
	// The next successful mutation clears it.
	ValidationError string          `json:"validationError,omitempty"`
	Warnings        []string        `json:"warnings,omitempty"`
	Totals          Totals          `json:"totals"`
	Schedule        PaymentSchedule `json:"schedule"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewConfiguration creates an empty configuration at step 1 with the default deposit.
func NewConfiguration(defaultDepositPence int64) *Configuration {
	now := time.Now().UTC()
	return &Configuration{
		DepositPence:        defaultDepositPence,
		DefaultDepositPence: defaultDepositPence,
		SelectedOptions:     []SelectedOption{},
		Step:                StepCustomer,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// SetModel replaces the selected model. Options, the package, warnings and
// any validation error are cleared, and everything is recomputed from the new
// model's base price. A nil model yields a null-state configuration.
func (c *Configuration) SetModel(model *ModelSnapshot) {
	c.Model = model
	c.SelectedOptions = []SelectedOption{}
	c.PioneerPackage = false
	c.PioneerVariant = ""
	c.PioneerPricePence = 0
	c.ValidationError = ""
	c.Warnings = nil
	c.Recalculate()
}

// SetChassisCost sets the customer-supplied chassis cost (ex VAT, pence).
func (c *Configuration) SetChassisCost(pence int64) {
	c.ValidationError = ""
	c.ChassisCostPence = pence
	c.Recalculate()
}

// SetDeposit sets the deposit amount in pence.
func (c *Configuration) SetDeposit(pence int64) {
	c.ValidationError = ""
	c.DepositPence = pence
	c.Recalculate()
}

// SetColor sets the exterior color. No recomputation needed.
func (c *Configuration) SetColor(color string) {
	c.ValidationError = ""
	c.Color = color
	c.touch()
}

// CustomerInfoPatch merges a subset of customer fields into the configuration.
type CustomerInfoPatch struct {
	Name      *string
	Email     *string
	Phone     *string
	AgentName *string
}

// SetCustomerInfo merges the provided fields. Price is unaffected.
func (c *Configuration) SetCustomerInfo(patch CustomerInfoPatch) {
	c.ValidationError = ""
	if patch.Name != nil {
		c.Customer.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Customer.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Customer.Phone = *patch.Phone
	}
	if patch.AgentName != nil {
		c.Customer.AgentName = *patch.AgentName
	}
	c.touch()
}

// AddOption upserts a line item from the catalog. If the option is already
// selected, its quantity is overwritten; otherwise a new line is appended.
// First-order and transitive requirements are pulled in afterwards.
// Quantities below zero clamp to zero.
func (c *Configuration) AddOption(opt CatalogOption, quantity int, catalog []CatalogOption) {
	c.ValidationError = ""
	if quantity < 0 {
		quantity = 0
	}

	if existing := c.findOption(opt.Slug); existing != nil {
		if existing.FromPackage && c.PioneerPackage {
			c.ValidationError = "option is included in the Pioneer Package and cannot be changed while the package is active"
			return
		}
		existing.Quantity = quantity
	} else {
		c.SelectedOptions = append(c.SelectedOptions, SelectedOption{
			Slug:       opt.Slug,
			Name:       opt.Name,
			PricePence: opt.PricePence,
			Quantity:   quantity,
			Category:   opt.Category,
		})
	}

	c.resolveRequirements(opt, catalog, map[string]bool{opt.Slug: true})
	c.Recalculate()
}

// RemoveOption filters the option out by slug. Unknown slugs are a no-op;
// package-locked items are refused while the package is active.
func (c *Configuration) RemoveOption(slug string) {
	c.ValidationError = ""
	existing := c.findOption(slug)
	if existing == nil {
		return
	}
	if existing.FromPackage && c.PioneerPackage {
		c.ValidationError = "option is included in the Pioneer Package and cannot be removed while the package is active"
		return
	}

	kept := c.SelectedOptions[:0]
	for _, item := range c.SelectedOptions {
		if item.Slug != slug {
			kept = append(kept, item)
		}
	}
	c.SelectedOptions = kept
	c.Recalculate()
}

// UpdateOptionQuantity updates a line item's quantity in place. Negative
// quantities clamp to zero. Item count never changes.
func (c *Configuration) UpdateOptionQuantity(slug string, quantity int) {
	c.ValidationError = ""
	existing := c.findOption(slug)
	if existing == nil {
		return
	}
	if existing.FromPackage && c.PioneerPackage {
		c.ValidationError = "option is included in the Pioneer Package and cannot be changed while the package is active"
		return
	}

	if quantity < 0 {
		quantity = 0
	}
	existing.Quantity = quantity
	c.Recalculate()
}

// Reset restores the configuration to its initial empty state.
func (c *Configuration) Reset() {
	*c = *NewConfiguration(c.DefaultDepositPence)
}

// Warn records an observable warning (catalog drift, lookup misses).
func (c *Configuration) Warn(message string) {
	c.Warnings = append(c.Warnings, message)
}

func (c *Configuration) findOption(slug string) *SelectedOption {
	for i := range c.SelectedOptions {
		if c.SelectedOptions[i].Slug == slug {
			return &c.SelectedOptions[i]
		}
	}
	return nil
}

func (c *Configuration) touch() {
	c.UpdatedAt = time.Now().UTC()
}

// Snapshot is the read-only submission view of a configuration. It is the only
// export boundary to the lead-capture collaborator.
type Snapshot struct {
	CustomerName     string           `json:"customerName"`
	CustomerEmail    string           `json:"customerEmail"`
	CustomerPhone    string           `json:"customerPhone"`
	AgentName        string           `json:"agentName,omitempty"`
	ModelSlug        string           `json:"modelSlug"`
	ModelName        string           `json:"modelName"`
	BasePricePence   int64            `json:"basePricePence"`
	ChassisCostPence int64            `json:"chassisCostPence"`
	DepositPence     int64            `json:"depositPence"`
	Color            string           `json:"color"`
	PioneerPackage   bool             `json:"pioneerPackage"`
	PioneerVariant   string           `json:"pioneerVariant,omitempty"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	Totals           Totals           `json:"totals"`
	Schedule         PaymentSchedule  `json:"schedule"`
	Warnings         []string         `json:"warnings,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Snapshot returns the submission snapshot, or a validation error when no
// model has been selected yet.
func (c *Configuration) Snapshot() (*Snapshot, error) {
	if c.Model == nil {
		return nil, apperr.Validation("no model selected")
	}

	options := make([]SelectedOption, len(c.SelectedOptions))
	copy(options, c.SelectedOptions)

	warnings := make([]string, len(c.Warnings))
	copy(warnings, c.Warnings)

	return &Snapshot{
		CustomerName:     c.Customer.Name,
		CustomerEmail:    c.Customer.Email,
		CustomerPhone:    c.Customer.Phone,
		AgentName:        c.Customer.AgentName,
		ModelSlug:        c.Model.Slug,
		ModelName:        c.Model.Name,
		BasePricePence:   c.basePricePence(),
		ChassisCostPence: c.ChassisCostPence,
		DepositPence:     c.DepositPence,
		Color:            c.Color,
		PioneerPackage:   c.PioneerPackage,
		PioneerVariant:   c.PioneerVariant,
		SelectedOptions:  options,
		Totals:           c.Totals,
		Schedule:         c.Schedule,
		Warnings:         warnings,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}, nil
}

// basePricePence returns the model base price, treating contact-only models
// (nil price) as zero.
func (c *Configuration) basePricePence() int64 {
	if c.Model == nil || c.Model.BasePricePence == nil {
		return 0
	}
	return *c.Model.BasePricePence
}

// vatRateBps returns the model VAT rate, falling back to the standard rate.
func (c *Configuration) vatRateBps() int {
	if c.Model == nil || c.Model.VatRateBps == 0 {
		return DefaultVatRateBps
	}
	return c.Model.VatRateBps
}
