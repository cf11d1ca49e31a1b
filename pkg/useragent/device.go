package useragent

import "strings"

var (
	botKeywords     = keywordSet{"bot", "spider", "crawler", "slurp", "archiver", "lighthouse", "monitor", "scraper", "fetcher", "validator"}
	consoleKeywords = keywordSet{"playstation", "xbox", "nintendo"}
	tabletKeywords  = keywordSet{"ipad", "tablet", "kindle", "silk", "sm-t", "sm-p"}
	mobileKeywords  = keywordSet{"mobile", "iphone", "ipod", "android", "iemobile", "blackberry"}
	desktopKeywords = keywordSet{"windows", "macintosh", "x11", "linux", "cros"}
)

// parseDeviceType buckets the client into a coarse device category.
// Tablets are checked before mobiles because Android tablet UAs still
// carry the "android" token.
func parseDeviceType(lower string) string {
	switch {
	case botKeywords.matches(lower):
		return DeviceTypeBot
	case consoleKeywords.matches(lower):
		return DeviceTypeConsole
	case tabletKeywords.matches(lower):
		return DeviceTypeTablet
	case mobileKeywords.matches(lower):
		return DeviceTypeMobile
	case desktopKeywords.matches(lower):
		return DeviceTypeDesktop
	default:
		return ""
	}
}

// vendorPatterns maps hardware vendors to UA substrings that identify them.
var vendorPatterns = []struct {
	vendor   string
	keywords keywordSet
}{
	{"Apple", keywordSet{"iphone", "ipad", "ipod", "macintosh"}},
	{"Samsung", keywordSet{"samsung", "sm-g", "sm-a", "sm-n", "sm-t", "sm-p"}},
	{"Huawei", keywordSet{"huawei", "honor", "mediapad"}},
	{"Xiaomi", keywordSet{"xiaomi", "redmi", "miui", "poco"}},
	{"Google", keywordSet{"pixel"}},
	{"OnePlus", keywordSet{"oneplus"}},
	{"Amazon", keywordSet{"kindle", "silk", "kf"}},
}

// modelTokens is the small set of models worth reporting by name.
var modelTokens = []string{"iphone", "ipad", "ipod", "pixel", "redmi", "kindle"}

// parseDevice extracts the hardware vendor and, where unambiguous, the
// device model. Desktop UAs rarely expose either.
func parseDevice(lower string) (vendor, model string) {
	for _, vp := range vendorPatterns {
		if vp.keywords.matches(lower) {
			vendor = vp.vendor
			break
		}
	}

	for _, tok := range modelTokens {
		if strings.Contains(lower, tok) {
			model = titleCaser.String(tok)
			break
		}
	}

	// Apple spells its models with interior capitals.
	switch model {
	case "Iphone":
		model = "iPhone"
	case "Ipad":
		model = "iPad"
	case "Ipod":
		model = "iPod"
	}

	return vendor, model
}
