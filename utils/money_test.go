package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"0.5", "$0.50"},
		{"300", "$300.00"},
		{"1250", "$1,250.00"},
		{"1500.5", "$1,500.50"},
		{"1000000", "$1,000,000.00"},
		{"-1250", "-$1,250.00"},
		// Large amounts keep exact cents; float64 rendering would drift here.
		{"99999999999.99", "$99,999,999,999.99"},
		{"12345678901.23", "$12,345,678,901.23"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, FormatUSD(d), "FormatUSD(%s)", tc.in)
	}
}
