package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// notAvailable is rendered for missing values.
const notAvailable = "N/A"

// Abbreviation thresholds for currency display.
const (
	MillionThreshold  = 1_000_000
	ThousandThreshold = 1_000
)

// FormatInt formats an integer with thousand separators.
// Example: FormatInt(18248) returns "18,248".
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the given precision and thousand separators.
// Rounding follows strconv (round half to even on the exact binary value).
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	formatted := strconv.FormatFloat(f, 'f', precision, 64)

	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")
	negative := strings.HasPrefix(intPart, "-")
	digits := strings.TrimPrefix(intPart, "-")

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// Beyond int64 range; leave ungrouped.
		return formatted
	}

	grouped := FormatInt(n)
	if negative {
		grouped = "-" + grouped
	}
	if hasFrac {
		return grouped + "." + fracPart
	}
	return grouped
}

// FormatCurrency formats a cost cell as an abbreviated dollar string.
//
//	|v| >= 1,000,000  "$X.XM"
//	|v| >= 1,000      "$X.XK"
//	otherwise     "$X,XXX"
//
// Cells that do not coerce to a number render as "N/A".
func FormatCurrency(c Cell) string {
	v, ok := Coerce(c).Float()
	if !ok {
		return notAvailable
	}
	return currency(v)
}

// Currency is FormatCurrency for an already-numeric amount.
func Currency(v float64) string {
	return FormatCurrency(Number(v))
}

func currency(v float64) string {
	magnitude := math.Abs(v)
	if magnitude >= MillionThreshold {
		return fmt.Sprintf("$%.1fM", v/MillionThreshold)
	}
	if magnitude >= ThousandThreshold {
		return fmt.Sprintf("$%.1fK", v/ThousandThreshold)
	}
	return "$" + FormatFloat(v, 0)
}

// FormatNumber renders a numeric cell with one decimal place and separators.
// Blank cells are "N/A" and free text is returned unchanged.
func FormatNumber(c Cell) string {
	return formatOr(c, func(v float64) string { return FormatFloat(v, 1) })
}

// FormatPlain renders a numeric cell as a separated integer.
// Blank cells are "N/A" and free text is returned unchanged.
func FormatPlain(c Cell) string {
	return formatOr(c, func(v float64) string { return FormatFloat(v, 0) })
}

// FormatEnergy renders a power draw such as "1,250 kW".
func FormatEnergy(c Cell) string {
	v, ok := Coerce(c).Float()
	if !ok {
		return notAvailable
	}
	return FormatFloat(v, 0) + " kW"
}

// FormatLand renders a land area such as "12.50 m²".
func FormatLand(c Cell) string {
	v, ok := Coerce(c).Float()
	if !ok {
		return notAvailable
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + " m²"
}

// FormatLifespan renders "12 years", or passes text like "indefinite" through.
func FormatLifespan(c Cell) string {
	return formatOr(c, func(v float64) string {
		return strconv.FormatFloat(v, 'f', 0, 64) + " years"
	})
}

// BatteryRatioLabel labels a battery fraction, e.g. 0.7 -> "70% Battery / 30% Tank".
func BatteryRatioLabel(fraction float64) string {
	pctBattery := int(math.RoundToEven(fraction * 100))
	return fmt.Sprintf("%d%% Battery / %d%% Tank", pctBattery, 100-pctBattery)
}

// formatOr applies fn to numeric cells, returns text cells verbatim and
// renders everything else as "N/A".
func formatOr(c Cell, fn func(float64) string) string {
	if c.IsBlank() {
		return notAvailable
	}
	if v, ok := Coerce(c).Float(); ok {
		return fn(v)
	}
	if text, ok := c.Raw(); ok {
		return text
	}
	return notAvailable
}
