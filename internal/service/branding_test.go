package service

import (
	"testing"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/stretchr/testify/assert"
)

var baseTheme = domain.Theme{
	PrimaryColor:   "#2563eb",
	SecondaryColor: "#0f172a",
	Title:          "Garage Connect",
	IconURL:        "/favicon.svg",
}

func TestApplyBranding(t *testing.T) {
	tenant := testTenant("aroni-moto")
	logo := "https://cdn.test/logo.png"
	tenant.LogoURL = &logo

	got := ApplyBranding(baseTheme, "Garage Connect", tenant)

	assert.Equal(t, "#e11d48", got.PrimaryColor)
	assert.Equal(t, "#111827", got.SecondaryColor)
	assert.Equal(t, "Aroni Moto - Garage Connect", got.Title)
	assert.Equal(t, logo, got.IconURL)
}

func TestApplyBranding_KeepsDefaultsForMissingFields(t *testing.T) {
	tenant := testTenant("bare")
	tenant.PrimaryColor = ""
	tenant.SecondaryColor = ""

	got := ApplyBranding(baseTheme, "Garage Connect", tenant)

	assert.Equal(t, baseTheme.PrimaryColor, got.PrimaryColor)
	assert.Equal(t, baseTheme.SecondaryColor, got.SecondaryColor)
	assert.Equal(t, baseTheme.IconURL, got.IconURL)
	assert.Equal(t, baseTheme, ApplyBranding(baseTheme, "Garage Connect", nil))
}

func TestApplyBranding_Idempotent(t *testing.T) {
	tenant := testTenant("aroni-moto")
	b := Brander{Base: baseTheme, TitleSuffix: "Garage Connect"}

	once := b.Apply(tenant)
	twice := ApplyBranding(once, b.TitleSuffix, tenant)

	assert.Equal(t, once, twice)
}
