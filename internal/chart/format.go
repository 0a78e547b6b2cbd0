package chart

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatPercent formats a ratio as a whole percentage, e.g. 0.25 as "25%"
func FormatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v*100), 'f', 0, 64) + "%"
}

// FormatNumber formats v with grouped thousands and just enough decimals to
// distinguish ticks spaced step apart
func FormatNumber(v, step float64) string {
	precision := 0
	if step > 0 && step < 1 {
		precision = -decimalExponent(step)
	}
	return numberPrinter.Sprint(number.Decimal(v,
		number.MinFractionDigits(precision),
		number.MaxFractionDigits(precision)))
}

// TickFormatter returns the axis label formatter for kind
func TickFormatter(kind Kind, step float64) func(float64) string {
	if kind == KindProbability {
		return FormatPercent
	}
	return func(v float64) string { return FormatNumber(v, step) }
}

// decimalExponent returns the power of ten of v's leading digit
func decimalExponent(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return 0
	}
	return exp
}
