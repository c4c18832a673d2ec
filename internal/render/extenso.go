package render

import (
	"errors"
	"math"
	"strings"
)

const zeroReais = "zero reais"

var (
	errNegativeAmount = errors.New("extenso: valor negativo")
	errInfiniteAmount = errors.New("extenso: valor infinito")
)

var (
	unidades  = [...]string{"", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove"}
	especiais = [...]string{"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	dezenas   = [...]string{"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa"}
	centenas  = [...]string{"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos"}
)

// ToWords переводит денежную сумму в слова на португальском:
// 21.50 -> "vinte e um reais e cinquenta centavos".
// Суммы от 1000 реалов описываются как "mais de mil".
// При ошибке преобразования возвращается сумма цифрами (FormatCurrency).
func ToWords(amount float64) (words string) {
	if math.IsNaN(amount) {
		return zeroReais
	}

	defer func() {
		if r := recover(); r != nil {
			words = FormatCurrency(amount)
		}
	}()

	words, err := currencyWords(amount)
	if err != nil {
		return FormatCurrency(amount)
	}
	return words
}

func currencyWords(amount float64) (string, error) {
	if amount < 0 {
		return "", errNegativeAmount
	}
	if math.IsInf(amount*100, 0) {
		return "", errInfiniteAmount
	}

	rounded := math.Round(amount*100) / 100
	reais := math.Floor(rounded)
	centavos := int(math.Round((rounded - reais) * 100))

	if reais == 0 && centavos == 0 {
		return zeroReais, nil
	}

	parts := make([]string, 0, 2)
	if reais > 0 {
		var n int
		if reais >= 1000 {
			n = 1000
		} else {
			n = int(reais)
		}
		parts = append(parts, numberWords(n)+" "+plural(n, "real", "reais"))
	}
	if centavos > 0 {
		parts = append(parts, numberWords(centavos)+" "+plural(centavos, "centavo", "centavos"))
	}
	return strings.Join(parts, " e "), nil
}

// numberWords описывает числа 1..999; для больших "mais de mil".
func numberWords(n int) string {
	switch {
	case n >= 1000:
		return "mais de mil"
	case n == 100:
		return "cem"
	case n > 100:
		rest := n % 100
		if rest == 0 {
			return centenas[n/100]
		}
		return centenas[n/100] + " e " + numberWords(rest)
	case n >= 20:
		unit := n % 10
		if unit == 0 {
			return dezenas[n/10]
		}
		return dezenas[n/10] + " e " + unidades[unit]
	case n >= 10:
		return especiais[n-10]
	default:
		return unidades[n]
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
