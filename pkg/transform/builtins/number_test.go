package builtins

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesseradata/tessera/pkg/transform"
)

func TestNumber_Decimals(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		opts transform.Options
		want string
	}{
		{"fixed two decimals", 42.5, transform.Options{"decimals": 2}, "42.50"},
		{"rounds", 0.4567, transform.Options{"decimals": 2}, "0.46"},
		{"json number input", json.Number("42.5"), transform.Options{"decimals": 2}, "42.50"},
		{"string input", "42.5", transform.Options{"decimals": 2}, "42.50"},
		{"no decimals option keeps precision", 0.123456, nil, "0.123456"},
		{"integer stays integer", 7, nil, "7"},
		{"zero decimals", 42.5, transform.Options{"decimals": 0}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, number(tt.in, tt.opts))
		})
	}
}

func TestNumber_LocaleGrouping(t *testing.T) {
	assert.Equal(t, "1,234,567.89", number(1234567.89, transform.Options{"decimals": 2}))
	assert.Equal(t, "1.234.567,89", number(1234567.89, transform.Options{"decimals": 2, "locale": "de"}))
	assert.Equal(t, "1,234,567", number(1234567, nil))
}

func TestNumber_PrefixSuffix(t *testing.T) {
	got := number(0.05, transform.Options{"decimals": 2, "prefix": "p=", "suffix": " *"})
	assert.Equal(t, "p=0.05 *", got)
}

func TestNumber_Notation(t *testing.T) {
	assert.Equal(t, "4.25e+01", number(42.5, transform.Options{"notation": "scientific", "decimals": 2}))
	assert.Equal(t, "1.5M", number(1500000, transform.Options{"notation": "compact"}))
	assert.Equal(t, "2.50K", number(2500, transform.Options{"notation": "compact", "decimals": 2}))
	assert.Equal(t, "3T", number(3e12, transform.Options{"notation": "compact"}))
	assert.Equal(t, "-1.2B", number(-1.2e9, transform.Options{"notation": "compact"}))
	assert.Equal(t, "999", number(999, transform.Options{"notation": "compact"}))
}

func TestNumber_NonNumericNeverFails(t *testing.T) {
	assert.Equal(t, "n/a", number("n/a", transform.Options{"decimals": 2}))
	assert.Equal(t, "true", number(true, nil))
}

func TestNumber_NonFiniteFallsBack(t *testing.T) {
	// ToFloat accepts "NaN" and "Inf" text; non-finite values keep their
	// default representation, options ignored.
	assert.Equal(t, "NaN", number("NaN", transform.Options{"decimals": 2}))
	assert.Equal(t, "Inf", number("Inf", transform.Options{"notation": "compact"}))
	assert.Equal(t, "NaN", number(math.NaN(), nil))
	assert.Equal(t, "-Inf", number(math.Inf(-1), transform.Options{"prefix": "p="}))
}
