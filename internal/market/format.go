package market

import (
	"math"
	"strconv"
	"strings"
)

// FormatPrice renders a USD value the way the bot quotes prices:
// dollar sign, comma-grouped integer part, and 2 to 6 fraction digits.
// Values below a tenth of a cent collapse to a fixed marker.
func FormatPrice(usd float64) string {
	if usd < 0.0001 {
		return "< $0.0001"
	}

	s := strconv.FormatFloat(usd, 'f', 6, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")
	for len(frac) < 2 {
		frac += "0"
	}
	return "$" + groupThousands(intPart) + "." + frac
}

// FormatAmount rounds to the nearest whole dollar amount and groups the
// digits, without a currency sign.
func FormatAmount(usd float64) string {
	return groupThousands(strconv.FormatFloat(math.Round(usd), 'f', 0, 64))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
