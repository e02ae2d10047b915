package utils

import (
	"fmt"
	"strings"
)

// FormatEUR renders integer cents as a fi-FI style euro amount, e.g.
// 129900 -> "1 299,00 €". This is the only place cents become a display
// string; arithmetic stays in integer cents everywhere else.
func FormatEUR(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	euros := cents / 100
	rem := cents % 100
	return fmt.Sprintf("%s%s,%02d €", sign, groupThousands(euros), rem)
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, " ")
}
