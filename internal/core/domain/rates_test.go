package domain_test

import (
	"testing"

	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPolicyFor(t *testing.T) {
	cases := []struct {
		country domain.CountryCode
		want    domain.PolicyKind
	}{
		{domain.CountryUnitedStates, domain.PolicyDomestic},
		{domain.CountryEthiopia, domain.PolicyFlatRate},
		{domain.CountryCameroon, domain.PolicyFixedLocal},
		{domain.CountryPhilippines, domain.PolicyTieredCity},
		{"RUSSIA", domain.PolicyCIS},
		{"LATVIA", domain.PolicyCIS},
		{"KENYA", domain.PolicyDSSR},
		{"FRANCE", domain.PolicyDefault},
		{"NO_SUCH_PLACE", domain.PolicyDefault},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.PolicyFor(tc.country), string(tc.country))
	}
}

func TestPhilippinesTierPHP(t *testing.T) {
	assert.True(t, domain.PhilippinesTierPHP("manila").Equal(decimal.NewFromInt(2200)))
	assert.True(t, domain.PhilippinesTierPHP("quezon city").Equal(decimal.NewFromInt(2200)))
	assert.True(t, domain.PhilippinesTierPHP("cebu").Equal(decimal.NewFromInt(1800)))
	assert.True(t, domain.PhilippinesTierPHP("davao").Equal(decimal.NewFromInt(1800)))
	assert.True(t, domain.PhilippinesTierPHP("baguio").Equal(decimal.NewFromInt(1500)))
	assert.True(t, domain.PhilippinesTierPHP("").Equal(decimal.NewFromInt(1500)))
}

func TestCurrencyFor(t *testing.T) {
	assert.Equal(t, domain.CurrencyCode("KES"), domain.CurrencyFor("KENYA"))
	assert.Equal(t, domain.CurrencyXAF, domain.CurrencyFor(domain.CountryCameroon))
	// Unknown countries report in USD.
	assert.Equal(t, domain.CurrencyUSD, domain.CurrencyFor("NO_SUCH_PLACE"))
}
