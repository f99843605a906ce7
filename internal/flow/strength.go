package flow

import "unicode/utf8"

// Strength grades a password for the on-screen indicator.
type Strength string

const (
	StrengthNone     Strength = ""
	StrengthWeak     Strength = "Weak"
	StrengthModerate Strength = "Moderate"
	StrengthStrong   Strength = "Strong"
)

type charClasses struct {
	lower, upper, digit, symbol bool
}

// classify reports which ASCII character classes occur in s. Anything that is
// not an ASCII letter or digit counts as a symbol, underscore included.
func classify(s string) charClasses {
	var cc charClasses
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			cc.lower = true
		case r >= 'A' && r <= 'Z':
			cc.upper = true
		case r >= '0' && r <= '9':
			cc.digit = true
		default:
			cc.symbol = true
		}
	}
	return cc
}

// RegistrationStrength is the rule used while creating an account:
// shorter than 6 is Weak; all four classes is Strong; 8 or longer is
// Moderate; anything else is Weak.
func RegistrationStrength(password string) Strength {
	n := utf8.RuneCountInString(password)
	if n < 6 {
		return StrengthWeak
	}
	cc := classify(password)
	if cc.lower && cc.upper && cc.digit && cc.symbol {
		return StrengthStrong
	}
	if n >= 8 {
		return StrengthModerate
	}
	return StrengthWeak
}

// ResetStrength is the looser rule of the reset screen: shorter than 6 is
// Weak; uppercase, digit and symbol together is Strong; otherwise Moderate.
func ResetStrength(password string) Strength {
	if utf8.RuneCountInString(password) < 6 {
		return StrengthWeak
	}
	cc := classify(password)
	if cc.upper && cc.digit && cc.symbol {
		return StrengthStrong
	}
	return StrengthModerate
}
