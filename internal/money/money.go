// Package money handles amounts as int64 minor units (cents).
//
// Rates are plain integers too: basis points for percentages
// (10% == 1000 bps) and hundredths for decimal odds (2.00x == 200).
// Keeping everything integral makes ledger arithmetic exact; decimal
// strings only exist at the HTTP edge and in user-facing messages.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMinor converts a positive decimal string with up to 2 fractional
// digits into minor units.
func ParseMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount required")
	}

	neg := false
	if s[0] == '+' {
		s = s[1:]
	} else if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount")
	}

	frac := "00"
	if len(parts) == 2 {
		if len(parts[1]) > 2 {
			return 0, fmt.Errorf("amount supports up to 2 decimals")
		}

		frac = parts[1] + strings.Repeat("0", 2-len(parts[1]))
	}

	ip, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount integer part")
	}

	fp, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount fractional part")
	}

	total := ip*100 + fp
	if neg {
		total = -total
	}

	if total <= 0 {
		return 0, fmt.Errorf("amount must be > 0")
	}

	return total, nil
}

// FormatMinor renders minor units as a 2-decimal string.
func FormatMinor(m int64) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}

	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}

// ApplyBps multiplies an amount by a basis-point rate, rounding half
// away from zero on the minor-unit scale.
func ApplyBps(amount int64, bps int32) int64 {
	return mulDivRound(amount, int64(bps), 10_000)
}

// ApplyOdds multiplies an amount by decimal odds expressed in
// hundredths (2.00x == 200).
func ApplyOdds(amount int64, oddsX100 int32) int64 {
	return mulDivRound(amount, int64(oddsX100), 100)
}

func mulDivRound(a, num, den int64) int64 {
	p := a * num

	if p < 0 {
		return -((-p + den/2) / den)
	}

	return (p + den/2) / den
}
