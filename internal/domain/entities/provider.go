package entities

import "fmt"

// Provider identifies an external payment gateway (or the internal mock).
type Provider string

const (
	ProviderStripe    Provider = "stripe"
	ProviderAdyen     Provider = "adyen"
	ProviderBraintree Provider = "braintree"
	ProviderInternal  Provider = "internal"
)

// AllProviders returns the closed provider set in stable order.
// The order is used for deterministic tie-breaking in routing.
func AllProviders() []Provider {
	return []Provider{ProviderStripe, ProviderAdyen, ProviderBraintree, ProviderInternal}
}

// Valid reports whether p is a member of the closed provider enumeration.
func (p Provider) Valid() bool {
	switch p {
	case ProviderStripe, ProviderAdyen, ProviderBraintree, ProviderInternal:
		return true
	}
	return false
}

// ParseProvider converts a lowercased provider name into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown provider %q", s)
	}
	return p, nil
}
