package client

import (
	"strings"

	"github.com/DeshmukhRuturaj/BROKER-FREE/models"
)

// LocalFilters re-apply a superset of the server-side filters over an
// already fetched page, purely for responsiveness. They never paginate the
// server results further.
type LocalFilters struct {
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Bathrooms    *int
	Location     string
	SearchTerm   string
}

// Apply returns the properties matching every set filter.
func (f LocalFilters) Apply(properties []models.Property) []models.Property {
	filtered := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if f.matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (f LocalFilters) matches(p models.Property) bool {
	if f.PropertyType != "" && f.PropertyType != "All" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms < *f.Bedrooms {
		return false
	}
	if f.Bathrooms != nil && p.Bathrooms < *f.Bathrooms {
		return false
	}
	if f.Location != "" && !matchesLocation(p, f.Location) {
		return false
	}
	if term := strings.TrimSpace(f.SearchTerm); term != "" && !matchesSearch(p, term) {
		return false
	}
	return true
}

func matchesLocation(p models.Property, location string) bool {
	needle := strings.ToLower(location)
	return containsFold(p.Address.City, needle) ||
		containsFold(p.Address.State, needle) ||
		containsFold(p.Address.Street, needle) ||
		containsFold(p.Address.ZipCode, needle)
}

func matchesSearch(p models.Property, term string) bool {
	needle := strings.ToLower(term)
	return containsFold(p.Title, needle) ||
		containsFold(p.Description, needle) ||
		containsFold(p.Address.City, needle) ||
		containsFold(p.Address.State, needle) ||
		containsFold(p.Address.Street, needle) ||
		containsFold(p.Address.ZipCode, needle) ||
		containsFold(p.PropertyType, needle)
}

// containsFold expects needle already lowercased.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
