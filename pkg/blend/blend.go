// Package blend defines the compositing modes shared by layer nodes and
// layer effects.
//
// Modes are plain string constants so they serialize directly into document
// records. [Passthrough] is only meaningful on group nodes: a passthrough
// group contributes no opacity/blend step of its own and its children
// composite directly against the group's backdrop.
package blend

// Mode is a compositing mode applied when a surface is blended with its
// backdrop.
type Mode string

const (
	// Normal is source-over compositing, the default for layers and effects.
	Normal Mode = "normal"

	// Passthrough disables the group's own compositing step. Valid for
	// groups only; the default for newly created groups.
	Passthrough Mode = "passthrough"

	Multiply   Mode = "multiply"
	Screen     Mode = "screen"
	Overlay    Mode = "overlay"
	Darken     Mode = "darken"
	Lighten    Mode = "lighten"
	ColorDodge Mode = "colorDodge"
	ColorBurn  Mode = "colorBurn"
	HardLight  Mode = "hardLight"
	SoftLight  Mode = "softLight"
	Difference Mode = "difference"
	Exclusion  Mode = "exclusion"
	Hue        Mode = "hue"
	Saturation Mode = "saturation"
	Color      Mode = "color"
	Luminosity Mode = "luminosity"
)

// valid is the closed set of modes accepted by [Valid].
var valid = map[Mode]bool{
	Normal: true, Passthrough: true, Multiply: true, Screen: true,
	Overlay: true, Darken: true, Lighten: true, ColorDodge: true,
	ColorBurn: true, HardLight: true, SoftLight: true, Difference: true,
	Exclusion: true, Hue: true, Saturation: true, Color: true,
	Luminosity: true,
}

// Valid reports whether m is a recognized compositing mode.
func Valid(m Mode) bool { return valid[m] }

// Normalize returns m if it is a recognized mode, otherwise [Normal].
// Deserialization uses this to absorb unknown modes from newer schema
// versions instead of failing the load.
func Normalize(m Mode) Mode {
	if Valid(m) {
		return m
	}
	return Normal
}
