package useragent

import (
	"regexp"
	"strings"
)

var (
	windowsVerRe = regexp.MustCompile(`Windows NT ([\d.]+)`)
	macVerRe     = regexp.MustCompile(`Mac OS X ([\d_.]+)`)
	iosVerRe     = regexp.MustCompile(`OS ([\d_]+) like Mac OS X`)
	androidVerRe = regexp.MustCompile(`Android ([\d.]+)`)
)

// parseOS returns the operating system name and, when the UA exposes one,
// its version. The raw string is needed alongside the lowercased one
// because the version regexes match vendor casing.
func parseOS(raw, lower string) (name, version string) {
	switch {
	case strings.Contains(lower, "windows"):
		return OSWindows, firstMatch(windowsVerRe, raw)
	case strings.Contains(lower, "iphone") || strings.Contains(lower, "ipad") || strings.Contains(lower, "ipod"):
		return OSiOS, underscoresToDots(firstMatch(iosVerRe, raw))
	case strings.Contains(lower, "mac os x") || strings.Contains(lower, "macintosh"):
		return OSMacOS, underscoresToDots(firstMatch(macVerRe, raw))
	case strings.Contains(lower, "android"):
		return OSAndroid, firstMatch(androidVerRe, raw)
	case strings.Contains(lower, "cros"):
		return OSChromeOS, ""
	case strings.Contains(lower, "linux") || strings.Contains(lower, "x11"):
		return OSLinux, ""
	default:
		return "", ""
	}
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// underscoresToDots normalizes Apple's "16_5_1" version format.
func underscoresToDots(s string) string {
	return strings.ReplaceAll(s, "_", ".")
}
