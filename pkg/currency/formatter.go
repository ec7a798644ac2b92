package currency

import (
	"fmt"
	"math"
)

const USD = "USD"

// FormatUSD renders an amount as "$1,234.50". Negative amounts get a leading
// minus sign.
func FormatUSD(amount float64) string {
	cents := math.Round(amount * 100)

	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := math.Floor(cents / 100)
	frac := int(cents - whole*100)

	intStr := fmt.Sprintf("%.0f", whole)
	formatted := addThousandsSeparator(intStr, ",")

	result := fmt.Sprintf("$%s.%02d", formatted, frac)
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
