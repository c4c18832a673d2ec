package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinNameLength            = 2
	MaxNameLength            = 150
	MinProposalTitleLength   = 3
	MaxProposalTitleLength   = 200
	MinTemplateTitleLength   = 1
	MaxTemplateTitleLength   = 150
	MaxTemplateContentLength = 100000
	MaxTextFieldLength       = 5000
	MaxServiceDescription    = 2000
	MaxPrice                 = 100000000.0 // 100 milhões
	MaxPercent               = 100.0
	MaxQuantity              = 100000.0
	MaxURLLength             = 500
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	stateRegex       = regexp.MustCompile(`^[A-Z]{2}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s deve ter pelo menos %d caracteres", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s deve ter no máximo %d caracteres", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s é obrigatório", fieldName)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email é obrigatório")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("email em formato inválido")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("email em formato inválido")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("email em formato inválido")
	}
	if !emailLocalRegex.MatchString(localPart) || !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("email em formato inválido")
	}
	return nil
}

// ValidateOptionalEmail проверяет email, если он указан.
func ValidateOptionalEmail(email *string) error {
	if email == nil || strings.TrimSpace(*email) == "" {
		return nil
	}
	return ValidateEmail(*email)
}

// ValidatePhone проверяет телефон: 10 или 11 цифр (с DDD), допускается +55.
func ValidatePhone(phone *string) error {
	if phone == nil || strings.TrimSpace(*phone) == "" {
		return nil
	}
	digits := OnlyDigits(*phone)
	if strings.HasPrefix(strings.TrimSpace(*phone), "+55") {
		digits = strings.TrimPrefix(digits, "55")
	}
	if len(digits) != 10 && len(digits) != 11 {
		return fmt.Errorf("telefone deve conter DDD e número")
	}
	return nil
}

// ValidateState проверяет сигл штата (UF).
func ValidateState(state *string) error {
	if state == nil || *state == "" {
		return nil
	}
	if !stateRegex.MatchString(strings.ToUpper(strings.TrimSpace(*state))) {
		return fmt.Errorf("estado deve ser a sigla da UF, por exemplo SP")
	}
	return nil
}

// ValidateTaxID проверяет CPF (11 цифр) или CNPJ (14 цифр) с контрольными разрядами.
func ValidateTaxID(taxID *string) error {
	if taxID == nil || strings.TrimSpace(*taxID) == "" {
		return nil
	}
	digits := OnlyDigits(*taxID)
	switch len(digits) {
	case 11:
		if !validCPF(digits) {
			return fmt.Errorf("CPF inválido")
		}
	case 14:
		if !validCNPJ(digits) {
			return fmt.Errorf("CNPJ inválido")
		}
	default:
		return fmt.Errorf("CPF/CNPJ deve ter 11 ou 14 dígitos")
	}
	return nil
}

// OnlyDigits оставляет в строке только цифры.
func OnlyDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func allSame(digits string) bool {
	return strings.Count(digits, digits[:1]) == len(digits)
}

func validCPF(d string) bool {
	if allSame(d) {
		return false
	}
	for _, n := range []int{9, 10} {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		check := sum * 10 % 11
		if check == 10 {
			check = 0
		}
		if check != int(d[n]-'0') {
			return false
		}
	}
	return true
}

func validCNPJ(d string) bool {
	if allSame(d) {
		return false
	}
	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	for _, n := range []int{12, 13} {
		w := weights[13-n:]
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * w[i]
		}
		check := sum % 11
		if check < 2 {
			check = 0
		} else {
			check = 11 - check
		}
		if check != int(d[n]-'0') {
			return false
		}
	}
	return true
}

// ValidateName проверяет имя клиента, компании или услуги.
func ValidateName(fieldName, name string) error {
	if err := ValidateNonEmpty(fieldName, name); err != nil {
		return err
	}
	return ValidateLength(fieldName, strings.TrimSpace(name), MinNameLength, MaxNameLength)
}

// ValidateProposalTitle проверяет заголовок предложения.
func ValidateProposalTitle(title string) error {
	if err := ValidateNonEmpty("título da proposta", title); err != nil {
		return err
	}
	return ValidateLength("título da proposta", strings.TrimSpace(title), MinProposalTitleLength, MaxProposalTitleLength)
}

// ValidateTemplate проверяет название и содержимое шаблона.
func ValidateTemplate(title, content string) error {
	if err := ValidateNonEmpty("título do modelo", title); err != nil {
		return err
	}
	if err := ValidateLength("título do modelo", strings.TrimSpace(title), MinTemplateTitleLength, MaxTemplateTitleLength); err != nil {
		return err
	}
	if err := ValidateNonEmpty("conteúdo do modelo", content); err != nil {
		return err
	}
	return ValidateLength("conteúdo do modelo", content, 0, MaxTemplateContentLength)
}

// ValidateOptionalText проверяет необязательное текстовое поле.
func ValidateOptionalText(fieldName string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return ValidateLength(fieldName, strings.TrimSpace(*value), 0, max)
}

// ValidatePrice проверяет цену.
func ValidatePrice(fieldName string, price float64) error {
	if price < 0 {
		return fmt.Errorf("%s não pode ser negativo", fieldName)
	}
	if price > MaxPrice {
		return fmt.Errorf("%s não pode exceder %.0f", fieldName, MaxPrice)
	}
	return nil
}

// ValidatePercent проверяет процент скидки или надбавки.
func ValidatePercent(fieldName string, v float64) error {
	if v < 0 || v > MaxPercent {
		return fmt.Errorf("%s deve estar entre 0 e 100", fieldName)
	}
	return nil
}

// ValidateQuantity проверяет количество услуги.
func ValidateQuantity(q float64) error {
	if q <= 0 {
		return fmt.Errorf("quantidade deve ser maior que zero")
	}
	if q > MaxQuantity {
		return fmt.Errorf("quantidade não pode exceder %.0f", MaxQuantity)
	}
	return nil
}

// ValidateURL проверяет внешнюю ссылку (например, логотип).
func ValidateURL(fieldName string, link *string) error {
	if link == nil || *link == "" {
		return nil
	}
	linkStr := strings.TrimSpace(*link)
	if err := ValidateLength(fieldName, linkStr, 0, MaxURLLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(linkStr)
	if err != nil || parsedURL.Host == "" {
		return fmt.Errorf("%s deve ser uma URL válida", fieldName)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s deve começar com http:// ou https://", fieldName)
	}
	return nil
}
