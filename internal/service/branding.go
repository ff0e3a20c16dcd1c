package service

import (
	"fmt"

	"github.com/garageconnect/customer/internal/domain"
)

// Brander derives a tenant's theme from the application defaults.
type Brander struct {
	Base        domain.Theme
	TitleSuffix string
}

func (b Brander) Apply(t *domain.Tenant) domain.Theme {
	return ApplyBranding(b.Base, b.TitleSuffix, t)
}

// ApplyBranding projects tenant colours, name and logo onto base. Empty
// tenant colours keep the base colours; a missing logo keeps the base icon.
func ApplyBranding(base domain.Theme, titleSuffix string, t *domain.Tenant) domain.Theme {
	theme := base
	if t == nil {
		return theme
	}

	if t.PrimaryColor != "" {
		theme.PrimaryColor = t.PrimaryColor
	}
	if t.SecondaryColor != "" {
		theme.SecondaryColor = t.SecondaryColor
	}
	if t.Name != "" {
		theme.Title = t.Name
		if titleSuffix != "" {
			theme.Title = fmt.Sprintf("%s - %s", t.Name, titleSuffix)
		}
	}
	if t.LogoURL != nil && *t.LogoURL != "" {
		theme.IconURL = *t.LogoURL
	}
	return theme
}
