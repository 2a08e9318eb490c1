package domain

import "strings"

// NormalizePhone keeps only digits so "(11) 98765-4321" and "11987654321" identify the same client
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
