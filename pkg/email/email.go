package email

import (
	"strings"
	"unicode"
)

// GreetingName derives a presentable first name from an email address so
// decision messages can open with something warmer than "Hello there". Falls
// back to the provided username when the email yields nothing usable.
func GreetingName(email, fallback string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 || parts[0] == "" {
		if fallback != "" {
			return fallback
		}
		return "there"
	}

	// Numeric-only local parts (throwaway addresses) read badly in a DM.
	if strings.IndexFunc(parts[0], unicode.IsLetter) == -1 {
		if fallback != "" {
			return fallback
		}
		return "there"
	}

	return capitalize(parts[0])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
