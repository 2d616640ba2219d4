// Package hsv converts fixed-point hue/saturation/value triples to 8-bit RGB
// without floating point. Hue spans six sextants of 256 steps each, so a full
// revolution is 1536.
package hsv

import "image/color"

// HueRange is the number of distinct hues in one revolution of the wheel.
const HueRange = 6 * 256

// roles holds RGB channel indices for the three ramps of a sextant.
type roles struct {
	mid, max, min uint8
}

// sextantRoles assigns channel roles per sextant. Sextants 6 and 7 only occur
// for hues at or above HueRange and mirror 5 and 4.
var sextantRoles = [8]roles{
	{mid: 1, max: 0, min: 2}, // red -> yellow
	{mid: 0, max: 1, min: 2}, // yellow -> green
	{mid: 2, max: 1, min: 0}, // green -> cyan
	{mid: 1, max: 2, min: 0}, // cyan -> blue
	{mid: 0, max: 2, min: 1}, // blue -> magenta
	{mid: 2, max: 0, min: 1}, // magenta -> red
	{mid: 2, max: 0, min: 1},
	{mid: 0, max: 2, min: 1},
}

// ToRGB converts h (sextant in the high byte, position within the sextant in
// the low byte), saturation s and value v into RGB channels.
func ToRGB(h uint16, s, v uint8) (r, g, b uint8) {
	if s == 0 {
		return v, v, v
	}
	sextant := uint8(h >> 8)
	fraction := uint16(h & 0xff)
	role := sextantRoles[sextant&7]

	var rgb [3]uint8
	rgb[role.max] = v

	ww := uint16(v) * (255 - uint16(s))
	ww++
	ww += ww >> 8
	rgb[role.min] = uint8(ww >> 8)

	var factor uint16
	if sextant&1 == 0 {
		factor = (255 << 8) - uint16(s)*(256-fraction)
	} else {
		factor = (255 << 8) - uint16(s)*fraction
	}
	d := uint32(v) * uint32(factor)
	d += d >> 8
	d += uint32(v)
	rgb[role.mid] = uint8(d >> 16)

	return rgb[0], rgb[1], rgb[2]
}

// RGBA is ToRGB packaged as an opaque color.
func RGBA(h uint16, s, v uint8) color.RGBA {
	r, g, b := ToRGB(h, s, v)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
