// Package useragent derives device metadata from HTTP User-Agent headers.
package useragent

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeviceInfo describes the client device behind a request as far as the
// User-Agent header reveals it. Every field is best-effort: an empty
// string means the value could not be determined. Parsing never fails.
type DeviceInfo struct {
	BrowserName     string `json:"browser_name,omitempty"`
	CPUArchitecture string `json:"cpu_architecture,omitempty"`
	DeviceModel     string `json:"device_model,omitempty"`
	DeviceType      string `json:"device_type,omitempty"`
	DeviceVendor    string `json:"device_vendor,omitempty"`
	OSName          string `json:"os_name,omitempty"`
	OSVersion       string `json:"os_version,omitempty"`
}

var titleCaser = cases.Title(language.English)

// Parse extracts DeviceInfo from a raw User-Agent header value.
// Unparseable or empty input yields a zero DeviceInfo, never an error.
func Parse(raw string) DeviceInfo {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DeviceInfo{}
	}

	lower := strings.ToLower(raw)

	info := DeviceInfo{
		BrowserName:     parseBrowser(lower),
		CPUArchitecture: parseArchitecture(lower),
		DeviceType:      parseDeviceType(lower),
	}
	info.OSName, info.OSVersion = parseOS(raw, lower)
	info.DeviceVendor, info.DeviceModel = parseDevice(lower)

	return info
}

// keywordSet groups substrings that identify one classification.
type keywordSet []string

func (k keywordSet) matches(s string) bool {
	for _, keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
