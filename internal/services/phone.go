package services

import "strings"

// Phone numbers arrive and are stored in inconsistent shapes: with or
// without a country-code prefix, with separators, sometimes with a
// leading zero. Canonicalization is a pure function shared by challenge
// issuance, verification and identity resolution so that every
// comparison runs against the same form. The storage form omits the
// country code; the provider-facing form requires it.

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nationalDigits is the length of a bare national mobile number. The
// country-code prefix is only stripped when the remainder is exactly
// this long, so a national number that happens to start with the same
// digits is left intact.
const nationalDigits = 10

// CanonicalMobile reduces a free-form phone number to its national
// digits: separators removed, leading international prefix ("00" or the
// country code itself) and trunk zero stripped.
func CanonicalMobile(raw, countryCode string) string {
	d := digitsOnly(raw)
	d = strings.TrimPrefix(d, "00")
	for len(d) > 1 && d[0] == '0' {
		d = d[1:]
	}
	if countryCode != "" && strings.HasPrefix(d, countryCode) && len(d) == len(countryCode)+nationalDigits {
		d = d[len(countryCode):]
	}
	return d
}

// ProviderMobile is the E.164-style form fed to the external provider.
// It must be derived from the identical canonical value at send and
// verify time.
func ProviderMobile(canonical, countryCode string) string {
	return "+" + countryCode + canonical
}

// MobileCandidates lists the stored shapes a canonical number may appear
// under, ordered from most to least reliable for lookups.
func MobileCandidates(raw, countryCode string) []string {
	canonical := CanonicalMobile(raw, countryCode)
	if canonical == "" {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	add(strings.TrimSpace(raw))
	add(canonical)
	add(countryCode + canonical)
	add("+" + countryCode + canonical)
	add("0" + canonical)
	return out
}

// MobileSuffix returns the trailing n digits of the canonical form, the
// basis of the last-resort suffix match tier.
func MobileSuffix(raw, countryCode string, n int) string {
	canonical := CanonicalMobile(raw, countryCode)
	if len(canonical) <= n {
		return canonical
	}
	return canonical[len(canonical)-n:]
}

// MaskMobile hides all but the last two digits for response envelopes.
func MaskMobile(mobile string) string {
	d := digitsOnly(mobile)
	if len(d) <= 2 {
		return d
	}
	return strings.Repeat("*", len(d)-2) + d[len(d)-2:]
}
