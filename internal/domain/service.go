package domain

import (
	"fmt"
	"strings"
)

// ServiceCatalogEntry represents a service offered by a provider
type ServiceCatalogEntry struct {
	Name            string
	DurationMinutes int
	Price           float64
}

// Validate checks a single catalog entry
func (s ServiceCatalogEntry) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return fmt.Errorf("%w: service name is required", ErrValidation)
	}
	if len(name) > MaxServiceNameLength {
		return fmt.Errorf("%w: service name %q is longer than %d characters", ErrValidation, name, MaxServiceNameLength)
	}
	if s.DurationMinutes <= 0 || s.DurationMinutes > MaxServiceDuration {
		return fmt.Errorf("%w: service %q duration must be in (0, %d] minutes", ErrValidation, name, MaxServiceDuration)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: service %q price must not be negative", ErrValidation, name)
	}
	return nil
}

// ServiceCatalog is the ordered list of services of one provider
type ServiceCatalog []ServiceCatalogEntry

// Validate checks every entry and rejects duplicate names
func (c ServiceCatalog) Validate() error {
	if len(c) > MaxCatalogSize {
		return fmt.Errorf("%w: catalog may contain at most %d services", ErrValidation, MaxCatalogSize)
	}
	seen := make(map[string]struct{}, len(c))
	for _, entry := range c {
		if err := entry.Validate(); err != nil {
			return err
		}
		if _, ok := seen[entry.Name]; ok {
			return fmt.Errorf("%w: duplicate service name %q", ErrValidation, entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}

// Find returns the entry with the given name
func (c ServiceCatalog) Find(name string) (ServiceCatalogEntry, bool) {
	for _, entry := range c {
		if entry.Name == name {
			return entry, true
		}
	}
	return ServiceCatalogEntry{}, false
}

// MinDuration returns the shortest service duration and false for an empty catalog
func (c ServiceCatalog) MinDuration() (int, bool) {
	if len(c) == 0 {
		return 0, false
	}
	shortest := c[0].DurationMinutes
	for _, entry := range c[1:] {
		if entry.DurationMinutes < shortest {
			shortest = entry.DurationMinutes
		}
	}
	return shortest, true
}

// Totals sums durations and prices of the given entries
func Totals(entries []ServiceCatalogEntry) (int, float64) {
	var duration int
	var price float64
	for _, entry := range entries {
		duration += entry.DurationMinutes
		price += entry.Price
	}
	return duration, price
}
