package render

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencyPrefix = "R$ "

// FormatCurrency форматирует сумму в реалах по правилам pt-BR: "R$ 1.234,50".
func FormatCurrency(amount float64) string {
	return currencyPrefix + FormatDecimal(amount)
}

// FormatDecimal печатает число с двумя знаками и разделителями pt-BR.
func FormatDecimal(amount float64) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("%.2f", amount)
}

// FormatPercent печатает процент с двумя знаками после точки.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatDate возвращает дату в формате DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
