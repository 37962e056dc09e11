package models

import "strings"

// UnknownRegion is the bucket for empty or unrecognized region values.
const UnknownRegion = "unknown"

// regionCodes is the closed set of Slovak kraj codes. Order matters for
// deterministic prefix resolution.
var regionCodes = []string{"BA", "TT", "TN", "NR", "ZA", "BB", "PO", "KE"}

// RegionCodes returns the known region codes in canonical order.
func RegionCodes() []string {
	out := make([]string, len(regionCodes))
	copy(out, regionCodes)
	return out
}

// NormalizeRegion maps free-text region values to a known kraj code by
// case-insensitive letter-prefix match. Values that match no code become
// UnknownRegion.
func NormalizeRegion(raw string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return UnknownRegion
	}
	for _, code := range regionCodes {
		if strings.HasPrefix(trimmed, code) {
			return code
		}
	}
	return UnknownRegion
}
