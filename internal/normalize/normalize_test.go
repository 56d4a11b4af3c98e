package normalize_test

import (
	"testing"

	"github.com/Velocity-Explorations/concierge/internal/normalize"
	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Nairobi", "nairobi"},
		{"  QUEZON   City ", "quezon city"},
		{"São Paulo", "sao paulo"},
		{"Yaoundé", "yaounde"},
		{"Côte d'Ivoire", "cote d'ivoire"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalize.Text(tc.in), tc.in)
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{"São   Paulo", "MANILA", "addis ababa"}
	for _, in := range inputs {
		once := normalize.Text(in)
		assert.Equal(t, once, normalize.Text(once), in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, normalize.Equal("Yaoundé", "yaounde"))
	assert.True(t, normalize.Equal("  Quezon City", "QUEZON  CITY "))
	assert.False(t, normalize.Equal("Manila", "Makati"))
}
