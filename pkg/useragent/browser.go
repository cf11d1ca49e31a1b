package useragent

import "strings"

// parseBrowser identifies the browser family from a lowercased UA string.
// Chromium-derived browsers embed "chrome", so the more specific tokens
// are checked first.
func parseBrowser(lower string) string {
	switch {
	case strings.Contains(lower, "edg/") || strings.Contains(lower, "edge/"):
		return BrowserEdge
	case strings.Contains(lower, "opr/") || strings.Contains(lower, "opera"):
		return BrowserOpera
	case strings.Contains(lower, "firefox/") || strings.Contains(lower, "fxios/"):
		return BrowserFirefox
	case strings.Contains(lower, "chrome/") || strings.Contains(lower, "crios/"):
		return BrowserChrome
	case strings.Contains(lower, "safari/"):
		return BrowserSafari
	default:
		return ""
	}
}

// parseArchitecture extracts the CPU architecture from platform tokens.
// Most browsers only expose this on desktop platforms.
func parseArchitecture(lower string) string {
	switch {
	case strings.Contains(lower, "aarch64") || strings.Contains(lower, "arm64"):
		return ArchARM64
	case strings.Contains(lower, "arm"):
		return ArchARM
	case strings.Contains(lower, "x86_64") || strings.Contains(lower, "x64") ||
		strings.Contains(lower, "win64") || strings.Contains(lower, "wow64") ||
		strings.Contains(lower, "amd64"):
		return ArchAMD64
	case strings.Contains(lower, "i686") || strings.Contains(lower, "i386"):
		return Arch386
	default:
		return ""
	}
}
