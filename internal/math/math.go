package math

import (
	"strconv"
)

// Format formats a float with 2 decimal digits
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// FormatG formats a float with 6 significant digits,
// switching to the exponent notation for very large or small values.
func FormatG(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// FormatE formats a float in exponent notation with 2 decimal digits.
func FormatE(f float64) string {
	return strconv.FormatFloat(f, 'e', 2, 64)
}

// FormatInt formats an int in base 10.
func FormatInt(i int) string {
	return strconv.Itoa(i)
}
