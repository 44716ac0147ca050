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
	uasurfer.DeviceComputer: "computer",
	uasurfer.DeviceTablet:   "tablet",
	uasurfer.DevicePhone:    "phone",
	uasurfer.DeviceConsole:  "console",
	uasurfer.DeviceWearable: "wearable",
	uasurfer.DeviceTV:       "tv",
}

// ParseUserAgent returns nil when the device type cannot be recognized.
func ParseUserAgent(uaString string, acceptLanguage string) *UserAgentInfo {
	ua := uasurfer.Parse(uaString)
	device, ok := deviceNames[ua.DeviceType]
	if !ok {
		return nil
	}
	return &UserAgentInfo{
		Device:  device,
		OS:      fmt.Sprintf("%s %d.%d", ua.OS.Name.String(), ua.OS.Version.Major, ua.OS.Version.Minor),
		Browser: fmt.Sprintf("%s %d.%d", ua.Browser.Name.String(), ua.Browser.Version.Major, ua.Browser.Version.Minor),
		Locale:  PrimaryLocale(acceptLanguage),
	}
}

// PrimaryLocale returns the first tag of an Accept-Language header without its quality value.
func PrimaryLocale(acceptLanguage string) string {
	first, _, _ := strings.Cut(acceptLanguage, ",")
	tag, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(tag)
}

// SplitLocale turns "es-MX" into ("es", "MX").
func SplitLocale(locale string) (language, region string) {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	language, region, _ = strings.Cut(locale, "-")
	return strings.ToLower(language), strings.ToUpper(region)
}
