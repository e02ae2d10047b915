package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEUR(t *testing.T) {
	cases := []struct {
		cents int
		want  string
	}{
		{0, "0,00 €"},
		{5, "0,05 €"},
		{12900, "129,00 €"},
		{129900, "1 299,00 €"},
		{1299050, "12 990,50 €"},
		{123456789, "1 234 567,89 €"},
		{-12900, "-129,00 €"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatEUR(tc.cents), "%d cents", tc.cents)
	}
}
