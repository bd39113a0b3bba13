package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Display fallbacks used while no profile is loaded.
const (
	FallbackName    = "Developer"
	FallbackInitial = "D"
)

// DisplayName returns the profile name, or FallbackName when p is nil or
// has no name.
func (p *UserProfile) DisplayName() string {
	if p == nil || p.Name == "" {
		return FallbackName
	}
	return p.Name
}

// Initial returns the upper-cased first letter of the display name.
func (p *UserProfile) Initial() string {
	if p == nil || p.Name == "" {
		return FallbackInitial
	}
	for _, r := range p.Name {
		return cases.Upper(language.Und).String(string(r))
	}
	return FallbackInitial
}
