// Package palette assigns node colours for rendered views.
package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DetailColor is used for every node of an area detail view. It is the
// single colour of a one-node overview.
var DetailColor = Evenly(1)[0]

// Evenly returns n colours with hues spaced evenly around the wheel at half
// saturation and half value, as hex strings.
func Evenly(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = hex(colorful.Hsv(360*float64(i)/float64(n), 0.5, 0.5))
	}
	return out
}

// hex formats c with each channel truncated to a byte. colorful.Color.Hex
// rounds instead, which moves half-value channels from 0x7f to 0x80.
func hex(c colorful.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(x float64) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 255
	}
	return uint8(x * 255)
}

// ForNodes maps each node id to a colour. With overview set, nodes get
// distinct colours in the given order; otherwise all share DetailColor.
func ForNodes(nodes []string, overview bool) map[string]string {
	out := make(map[string]string, len(nodes))
	if !overview {
		for _, id := range nodes {
			out[id] = DetailColor
		}
		return out
	}
	for i, c := range Evenly(len(nodes)) {
		out[nodes[i]] = c
	}
	return out
}
