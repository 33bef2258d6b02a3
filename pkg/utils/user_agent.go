package utils

import (
	"fmt"
	"strings"

	"github.com/avct/uasurfer"
)

type UserAgentInfo struct {
	Device  string
	OS      string
	Browser string
	Locale  string
}

var deviceNames = map[uasurfer.DeviceType]string{
	uasurfer.DeviceComputer: "Computer",
	uasurfer.DeviceTablet:   "Tablet",
	uasurfer.DevicePhone:    "Phone",
	uasurfer.DeviceConsole:  "Console",
	uasurfer.DeviceWearable: "Wearable",
	uasurfer.DeviceTV:       "TV",
}

// ParseUserAgent enriches a traffic event with device, OS and browser names.
// Crawlers report Device "Bot"; anything unrecognised is "Unknown". It never
// returns nil.
func ParseUserAgent(uaString string, acceptLanguage string) *UserAgentInfo {
	info := &UserAgentInfo{
		Device: "Unknown",
		Locale: primaryLocale(acceptLanguage),
	}
	if strings.TrimSpace(uaString) == "" {
		return info
	}

	ua := uasurfer.Parse(uaString)
	if name, ok := deviceNames[ua.DeviceType]; ok {
		info.Device = name
	}
	if ua.IsBot() {
		info.Device = "Bot"
	}
	if ua.OS.Name != uasurfer.OSUnknown {
		info.OS = versioned(strings.TrimPrefix(ua.OS.Name.String(), "OS"), ua.OS.Version)
	}
	if ua.Browser.Name != uasurfer.BrowserUnknown {
		info.Browser = versioned(strings.TrimPrefix(ua.Browser.Name.String(), "Browser"), ua.Browser.Version)
	}
	return info
}

func versioned(name string, v uasurfer.Version) string {
	if v.Major == 0 && v.Minor == 0 {
		return name
	}
	return fmt.Sprintf("%s %d.%d", name, v.Major, v.Minor)
}

// primaryLocale returns the first language tag of an Accept-Language value
// without its quality parameter.
func primaryLocale(acceptLanguage string) string {
	first, _, _ := strings.Cut(acceptLanguage, ",")
	tag, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(tag)
}
