package domain

import "strings"

// ProviderFilter narrows a directory search. Every field is optional and
// set fields combine with AND. Completeness and availability are always
// required and are not part of the filter.
type ProviderFilter struct {
	ServiceType   string
	City          string
	Pincode       string
	MinExperience *int
	MaxPrice      *float64
}

// Matches applies the filter to a single provider in memory.
func (f ProviderFilter) Matches(p *Provider) bool {
	if !p.IsProfileComplete || !p.IsAvailable {
		return false
	}
	if f.ServiceType != "" && !strings.EqualFold(p.ServiceType, f.ServiceType) {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(f.City)) {
		return false
	}
	if f.Pincode != "" && p.Pincode != f.Pincode {
		return false
	}
	if f.MinExperience != nil && p.Experience < *f.MinExperience {
		return false
	}
	if f.MaxPrice != nil && p.PricePerVisit > *f.MaxPrice {
		return false
	}
	return true
}
