package transport

// Models

type ModelResponse struct {
	Slug            string  `json:"slug"`
	Name            string  `json:"name"`
	BasePricePence  *int64  `json:"basePricePence"`
	VatRateBps      int     `json:"vatRateBps"`
	WeightClass     string  `json:"weightClass"`
	Availability    string  `json:"availability"`
	PioneerEligible bool    `json:"pioneerEligible"`
	Description     *string `json:"description,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type ModelListResponse struct {
	Items []ModelResponse `json:"items"`
	Total int             `json:"total"`
}

// Options

type ListOptionsRequest struct {
	Category string `form:"category" validate:"omitempty,max=100"`
}

type OptionResponse struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	PricePence  int64    `json:"pricePence"`
	Category    string   `json:"category"`
	Subcategory *string  `json:"subcategory,omitempty"`
	PricingType string   `json:"pricingType"`
	Requires    []string `json:"requires,omitempty"`
	Description *string  `json:"description,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type OptionListResponse struct {
	Items []OptionResponse `json:"items"`
	Total int              `json:"total"`
}
