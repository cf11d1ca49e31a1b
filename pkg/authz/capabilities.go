package authz

import (
	"slices"
	"sort"
	"strings"
)

// CapabilitySeparator separates capabilities in their string form.
const CapabilitySeparator = " "

// ParseCapabilities converts a space-separated capability string into a
// slice, trimming blanks. Returns nil for empty input.
func ParseCapabilities(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parts := strings.Split(s, CapabilitySeparator)
	caps := make([]string, 0, len(parts))
	for i := range parts {
		if parts[i] = strings.TrimSpace(parts[i]); parts[i] != "" {
			caps = append(caps, parts[i])
		}
	}
	return caps
}

// JoinCapabilities is the inverse of ParseCapabilities.
func JoinCapabilities(caps []string) string {
	if len(caps) == 0 {
		return ""
	}
	return strings.Join(caps, CapabilitySeparator)
}

// Can reports whether the capability set grants the named capability.
// Membership is flat and exact-string: no wildcards, no hierarchy, no
// prefix matching. "edit:company" grants "edit:company" and nothing
// else.
func Can(caps []string, capability string) bool {
	return slices.Contains(caps, capability)
}

// CanAll reports whether every required capability is present.
// An empty requirement list is trivially satisfied.
func CanAll(caps []string, required ...string) bool {
	for _, req := range required {
		if !Can(caps, req) {
			return false
		}
	}
	return true
}

// CanAny reports whether at least one required capability is present.
// An empty requirement list is trivially satisfied.
func CanAny(caps []string, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, req := range required {
		if Can(caps, req) {
			return true
		}
	}
	return false
}

// Normalize removes duplicates and sorts the set for stable storage.
func Normalize(caps []string) []string {
	if len(caps) == 0 {
		return nil
	}

	unique := make(map[string]struct{}, len(caps))
	for _, c := range caps {
		unique[c] = struct{}{}
	}

	out := make([]string, 0, len(unique))
	for c := range unique {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
