package core

import (
	"math"

	"github.com/dustin/go-humanize"
)

// byteUnits are the decimal unit abbreviations used in every report.
var byteUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// significantDigits is how many significant digits a formatted size keeps.
const significantDigits = 3

// PrettyBytes formats a byte count with decimal units, keeping three
// significant digits and dropping trailing zeros: 5000 is "5 kB", 14800 is
// "14.8 kB" and -1337 is "-1.34 kB".
func PrettyBytes(n int64) string {
	if n == 0 {
		return "0 B"
	}
	sign := ""
	if n < 0 {
		sign = "-"
	}
	abs := math.Abs(float64(n))

	exponent := min(int(math.Floor(math.Log10(abs)/3)), len(byteUnits)-1)
	if exponent == 0 {
		return sign + humanize.FtoaWithDigits(abs, 0) + " B"
	}

	value := abs / math.Pow(1000, float64(exponent))
	value, decimals := roundSignificant(value, significantDigits)
	return sign + humanize.FtoaWithDigits(value, decimals) + " " + byteUnits[exponent]
}

// roundSignificant rounds v half-up to the given number of significant digits
// and returns the number of decimal places that remain meaningful.
func roundSignificant(v float64, digits int) (float64, int) {
	intDigits := int(math.Floor(math.Log10(v))) + 1
	decimals := max(digits-intDigits, 0)
	scale := math.Pow(10, float64(decimals))
	return math.Floor(v*scale+0.5) / scale, decimals
}

// roundHalfUp rounds v to the given number of decimal places, with halves
// rounded towards positive infinity.
func roundHalfUp(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	r := math.Floor(v*scale+0.5) / scale
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}
