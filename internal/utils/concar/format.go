package concar

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "02/01/2006"
	listSeparator  = "; "
	emptyAnnex     = "0000"
	localCurrency  = "PEN"
	concarCurrency = "MN"
)

// FormatAmount renders an amount the way CONCAR expects it: two decimals and
// comma thousands separators (1,400.00).
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	return sign + b.String() + "." + fracPart
}

// FormatDate renders a date as dd/mm/yyyy. Zero dates render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// CurrencyCode maps ISO currency codes to CONCAR's; only soles are renamed.
func CurrencyCode(code string) string {
	if code == localCurrency {
		return concarCurrency
	}
	return code
}

func joinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, listSeparator)
}
