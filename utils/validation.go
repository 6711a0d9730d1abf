// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

func cleanPhone(phone string) string {
	cleaned := strings.TrimSpace(phone)
	for _, sep := range []string{" ", "-", "(", ")", "."} {
		cleaned = strings.ReplaceAll(cleaned, sep, "")
	}
	return cleaned
}

// ValidatePhone accepts local or international numbers with 7 to 15 digits.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(cleanPhone(phone))
}

// NormalizePhone returns the number in E.164 form. Numbers without a leading
// "+" are treated as local and get countryCode in front.
func NormalizePhone(phone, countryCode string) (string, bool) {
	cleaned := cleanPhone(phone)
	if !phonePattern.MatchString(cleaned) {
		return "", false
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned, true
	}
	return "+" + strings.TrimPrefix(countryCode, "+") + cleaned, true
}
