package builtins

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tesseradata/tessera/pkg/transform"
)

var defaultScale = []rgb{{255, 255, 255}, {255, 0, 0}}

// heatmap colors a cell by where its numeric value falls in [min, max],
// clamping values outside the range. min and max are required and must form
// a finite ascending range; when they do not, or the value is not a number
// (NaN included), the cell degrades to its default representation. The
// colors option supplies custom hex stops for the scale; the default runs
// white to red.
func heatmap(value interface{}, opts transform.Options) string {
	text := transform.DefaultString(value)

	f, ok := transform.ToFloat(value)
	if !ok || math.IsNaN(f) {
		return text
	}
	min, okMin := opts.FloatOK("min")
	max, okMax := opts.FloatOK("max")
	if !okMin || !okMax || !finiteRange(min, max) {
		return text
	}

	stops := parseStops(opts.Strings("colors"))
	if len(stops) < 2 {
		stops = defaultScale
	}

	f = math.Min(math.Max(f, min), max)
	color := scaleColor(stops, (f-min)/(max-min))
	return span("heatmap", "background-color:"+color, text)
}

// finiteRange reports whether lo and hi are finite and strictly ascending.
// strconv parses "NaN" and "Inf" option text as numbers, and neither bounds
// a usable color range.
func finiteRange(lo, hi float64) bool {
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return false
	}
	return lo < hi
}

type rgb struct{ r, g, b uint8 }

func parseStops(hexes []string) []rgb {
	if len(hexes) == 0 {
		return nil
	}
	stops := make([]rgb, 0, len(hexes))
	for _, h := range hexes {
		c, ok := parseHexColor(h)
		if !ok {
			return nil
		}
		stops = append(stops, c)
	}
	return stops
}

func parseHexColor(s string) (rgb, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

// scaleColor interpolates linearly between the two stops that bracket ratio.
// A NaN ratio collapses to the first stop.
func scaleColor(stops []rgb, ratio float64) string {
	if math.IsNaN(ratio) || ratio <= 0 {
		return stops[0].hex()
	}
	if ratio >= 1 {
		return stops[len(stops)-1].hex()
	}
	seg := ratio * float64(len(stops)-1)
	i := int(seg)
	return blendColor(stops[i], stops[i+1], seg-float64(i)).hex()
}

// blendColor mixes a and b channel-wise, t distance from a.
func blendColor(a, b rgb, t float64) rgb {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return rgb{lerp(a.r, b.r), lerp(a.g, b.g), lerp(a.b, b.b)}
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}
