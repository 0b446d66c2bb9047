package market

import (
	"strconv"
	"strings"
)

// YahooSymbol translates a local exchange code into the suffix form
// Yahoo Finance expects. Codes from other markets pass through as-is.
func YahooSymbol(symbol string, m Market) string {
	code := strings.TrimSpace(symbol)
	switch m {
	case MarketA:
		// Shanghai listings start with 6 or 9, everything else is Shenzhen.
		if strings.HasPrefix(code, "6") || strings.HasPrefix(code, "9") {
			return code + ".SS"
		}
		return code + ".SZ"
	case MarketHK:
		if n, err := strconv.Atoi(code); err == nil && n < 1000 {
			code = zeroPad(code, 4)
		}
		return code + ".HK"
	default:
		return code
	}
}

// SinaSymbol translates a local exchange code into the list key used by
// the Sina quote endpoint. Returns "" for markets Sina does not cover.
func SinaSymbol(symbol string, m Market) string {
	code := strings.TrimSpace(symbol)
	switch m {
	case MarketA:
		if strings.HasPrefix(code, "6") || strings.HasPrefix(code, "9") {
			return "sh" + code
		}
		return "sz" + code
	case MarketHK:
		if n, err := strconv.Atoi(code); err == nil && n < 10000 {
			code = zeroPad(code, 5)
		}
		return "hk" + code
	default:
		return ""
	}
}

func zeroPad(code string, width int) string {
	for len(code) < width {
		code = "0" + code
	}
	return code
}
