// internal/ua/ua.go
//
// User-Agent summary for submission logs.
//
// Wraps github.com/avct/uasurfer so callers never see its enums.  Only the
// coarse attributes that help tell people from scripts are kept.
package ua

import (
	"strconv"

	surfer "github.com/avct/uasurfer"
)

// Client describes the browser behind a request.
//
// Example (Chrome on macOS):
//
//	Browser "BrowserChrome"
//	Version "125"
//	OS      "OSMacOSX"
//	Device  "Desktop"
//	IsBot   false
type Client struct {
	Browser string
	Version string
	OS      string
	Device  string // Desktop, Mobile, Tablet, or Other
	IsBot   bool
}

// Parse summarises a raw User-Agent header.  An empty header yields an
// unknown client of device "Other".
func Parse(raw string) Client {
	u := surfer.Parse(raw)

	c := Client{
		Browser: u.Browser.Name.String(),
		OS:      u.OS.Name.String(),
		IsBot:   u.IsBot(),
	}
	if u.Browser.Version.Major > 0 {
		c.Version = strconv.Itoa(u.Browser.Version.Major)
	}

	switch u.DeviceType {
	case surfer.DeviceComputer:
		c.Device = "Desktop"
	case surfer.DeviceTablet:
		c.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		c.Device = "Mobile"
	default:
		c.Device = "Other"
	}
	return c
}

// Fields returns c as zap key/value pairs.
func (c Client) Fields() []any {
	return []any{
		"browser", c.Browser,
		"browser_version", c.Version,
		"os", c.OS,
		"device", c.Device,
		"bot", c.IsBot,
	}
}
