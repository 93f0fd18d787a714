package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalMobile(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		countryCode string
		want        string
	}{
		{"already canonical", "9876543210", "91", "9876543210"},
		{"separators stripped", "+91 98765-43210", "91", "9876543210"},
		{"international 00 prefix", "00919876543210", "91", "9876543210"},
		{"country code prefix", "919876543210", "91", "9876543210"},
		{"trunk zero", "09876543210", "91", "9876543210"},
		{"zero then country code", "0919876543210", "91", "9876543210"},
		{"national number starting with cc digits", "9187654321", "91", "9187654321"},
		{"short number keeps cc-looking prefix", "9187", "91", "9187"},
		{"empty input", "", "91", ""},
		{"letters only", "call me", "91", ""},
		{"no country code configured", "+91 98765-43210", "", "919876543210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalMobile(tt.raw, tt.countryCode))
		})
	}
}

func TestProviderMobile(t *testing.T) {
	assert.Equal(t, "+919876543210", ProviderMobile("9876543210", "91"))
}

func TestProviderMobileNeverDoublePrefixed(t *testing.T) {
	// stored shapes that already carry the country code must not end up
	// with it twice in the provider-facing form
	for _, raw := range []string{"919876543210", "0919876543210", "+91 98765-43210"} {
		got := ProviderMobile(CanonicalMobile(raw, "91"), "91")
		assert.Equal(t, "+919876543210", got, "raw %q", raw)
	}
}

func TestProviderMobileRoundTrip(t *testing.T) {
	// the provider-facing form must canonicalize back to the same value,
	// or send and verify would address different challenges
	canonical := CanonicalMobile("098765 43210", "91")
	again := CanonicalMobile(ProviderMobile(canonical, "91"), "91")
	assert.Equal(t, canonical, again)
}

func TestMobileCandidates(t *testing.T) {
	got := MobileCandidates("9876543210", "91")
	assert.Equal(t, []string{
		"9876543210",
		"919876543210",
		"+919876543210",
		"09876543210",
	}, got)
}

func TestMobileCandidatesRawPreserved(t *testing.T) {
	got := MobileCandidates("+91 98765-43210", "91")
	// the raw input leads, then derived shapes without duplicates
	assert.Equal(t, "+91 98765-43210", got[0])
	assert.Contains(t, got, "9876543210")
	assert.Contains(t, got, "+919876543210")

	seen := map[string]int{}
	for _, v := range got {
		seen[v]++
		assert.Equal(t, 1, seen[v], "candidate %q duplicated", v)
	}
}

func TestMobileCandidatesEmpty(t *testing.T) {
	assert.Nil(t, MobileCandidates("no digits", "91"))
}

func TestMobileSuffix(t *testing.T) {
	assert.Equal(t, "76543210", MobileSuffix("+91 98765-43210", "91", 8))
	assert.Equal(t, "43210", MobileSuffix("43210", "91", 8), "short numbers return whole value")
}

func TestMaskMobile(t *testing.T) {
	assert.Equal(t, "********10", MaskMobile("9876543210"))
	assert.Equal(t, "**********10", MaskMobile("+91 98765-43210"))
	assert.Equal(t, "10", MaskMobile("10"))
	assert.Equal(t, "", MaskMobile(""))
}
