package worldstate

import "strings"

// Platform selects which platform's world state to fetch.
type Platform string

const (
	PlatformPC     Platform = "pc"
	PlatformPS4    Platform = "ps4"
	PlatformXB1    Platform = "xb1"
	PlatformSwitch Platform = "swi"

	DefaultPlatform = PlatformPC
)

var validPlatforms = map[Platform]bool{
	PlatformPC:     true,
	PlatformPS4:    true,
	PlatformXB1:    true,
	PlatformSwitch: true,
}

// ValidatePlatform normalizes a platform parameter, falling back to the
// default for anything unrecognized.
func ValidatePlatform(param string) Platform {
	p := Platform(strings.ToLower(strings.TrimSpace(param)))
	if validPlatforms[p] {
		return p
	}
	return DefaultPlatform
}
