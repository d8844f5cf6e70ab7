package builtins

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	textnumber "golang.org/x/text/number"

	"github.com/tesseradata/tessera/pkg/transform"
)

// number formats numeric values. Options, all optional: decimals (fixed
// fraction digits; default keeps the source precision unrounded), locale
// (BCP 47 tag for digit grouping, default en), prefix, suffix, and notation
// (standard, scientific or compact). Non-numeric and non-finite input never
// fails; it renders as its default representation.
func number(value interface{}, opts transform.Options) string {
	f, ok := transform.ToFloat(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return transform.DefaultString(value)
	}

	decimals, fixed := opts.IntOK("decimals")
	if fixed && decimals < 0 {
		fixed = false
	}

	var formatted string
	switch opts.String("notation", "standard") {
	case "scientific":
		prec := -1
		if fixed {
			prec = decimals
		}
		formatted = strconv.FormatFloat(f, 'e', prec, 64)
	case "compact":
		formatted = compactNumber(f, decimals, fixed)
	default:
		formatted = localizedNumber(f, opts.String("locale", "en"), decimals, fixed)
	}

	return opts.String("prefix", "") + formatted + opts.String("suffix", "")
}

// localizedNumber renders f with locale-correct grouping and decimal marks.
// Without a fixed decimals option the source precision is preserved, never
// rounded to a locale default.
func localizedNumber(f float64, locale string, decimals int, fixed bool) string {
	if !fixed {
		decimals = fractionDigits(f)
	}
	p := message.NewPrinter(language.Make(locale))
	return p.Sprintf("%v", textnumber.Decimal(f,
		textnumber.MaxFractionDigits(decimals),
		textnumber.MinFractionDigits(decimals)))
}

// fractionDigits counts the fraction digits of f's shortest decimal form.
func fractionDigits(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// compactNumber renders large magnitudes with K/M/B/T suffixes.
func compactNumber(f float64, decimals int, fixed bool) string {
	if !fixed {
		decimals = 1
	}

	scaled, suffix := f, ""
	switch abs := math.Abs(f); {
	case abs >= 1e12:
		scaled, suffix = f/1e12, "T"
	case abs >= 1e9:
		scaled, suffix = f/1e9, "B"
	case abs >= 1e6:
		scaled, suffix = f/1e6, "M"
	case abs >= 1e3:
		scaled, suffix = f/1e3, "K"
	}

	s := strconv.FormatFloat(scaled, 'f', decimals, 64)
	if !fixed && strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s + suffix
}
