package entities

import "github.com/shopspring/decimal"

// CardBIN holds issuer metadata for a Bank Identification Number
// (the leading 6-8 digits of a card number).
type CardBIN struct {
	BIN      string `json:"bin"`
	Brand    string `json:"brand,omitempty"`
	Type     string `json:"type,omitempty"`
	Category string `json:"category,omitempty"`
	Issuer   string `json:"issuer,omitempty"`
	Country  string `json:"country,omitempty"`
	Alpha2   string `json:"alpha2,omitempty"`
	Alpha3   string `json:"alpha3,omitempty"`
}

// InterchangeFee is the issuer-side fee schedule for a network/card-type
// combination within a region.
type InterchangeFee struct {
	Network      string          `json:"network"`
	CardType     string          `json:"card_type"`
	CardCategory string          `json:"card_category,omitempty"`
	Region       string          `json:"region"`
	FeePercent   decimal.Decimal `json:"fee_percent"`
	FeeFixed     decimal.Decimal `json:"fee_fixed"`
}
