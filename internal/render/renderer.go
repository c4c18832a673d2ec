package render

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// ErrorMarker возвращается вместо документа, если шаблон не является строкой.
const ErrorMarker = "[Erro: Template inválido]"

const defaultTimezone = "America/Sao_Paulo"

var tokenPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Renderer подставляет данные Bundle в шаблон.
// Значение неизменяемо после создания и безопасно для конкурентного использования.
type Renderer struct {
	loc *time.Location
	now func() time.Time
}

// Option настраивает Renderer.
type Option func(*Renderer)

// WithLocation задаёт часовой пояс для дат предложения и data_atual.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithClock подменяет источник текущего времени (нужно для тестов).
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// New создаёт рендерер с часовым поясом America/Sao_Paulo по умолчанию.
func New(opts ...Option) *Renderer {
	r := &Renderer{loc: DefaultLocation(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultLocation возвращает America/Sao_Paulo или UTC-3, если tzdata недоступна.
func DefaultLocation() *time.Location {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

var defaultRenderer = New()

// Render подставляет данные в шаблон рендерером по умолчанию.
func Render(template string, data Bundle) string {
	return defaultRenderer.Render(template, data)
}

// RenderAny принимает шаблон произвольного типа (например, из JSON).
func RenderAny(template any, data Bundle) string {
	return defaultRenderer.RenderAny(template, data)
}

// RenderAny возвращает ErrorMarker, если template не строка.
func (r *Renderer) RenderAny(template any, data Bundle) string {
	s, ok := template.(string)
	if !ok {
		return ErrorMarker
	}
	return r.Render(s, data)
}

// Render заменяет каждый известный токен {{key}} за один проход по шаблону.
// Неизвестные токены остаются как есть; подставленные значения повторно не сканируются.
func (r *Renderer) Render(template string, data Bundle) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	resolved := make(map[string]string)
	return tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[2 : len(match)-2]
		if v, ok := resolved[key]; ok {
			return v
		}
		resolve, ok := resolvers[key]
		if !ok {
			return match
		}
		v := resolve(r, &data)
		resolved[key] = v
		return v
	})
}

// IsKnownToken сообщает, распознаёт ли рендерер ключ.
func IsKnownToken(key string) bool {
	_, ok := resolvers[key]
	return ok
}

type resolver func(r *Renderer, b *Bundle) string

var resolvers = map[string]resolver{
	"cliente_nome":     clientField(func(c *Client) string { return c.Name }, "[Nome do Cliente]"),
	"cliente_empresa":  clientField(func(c *Client) string { return c.Company }, "[Empresa do Cliente]"),
	"cliente_email":    clientField(func(c *Client) string { return c.Email }, "[Email do Cliente]"),
	"cliente_telefone": clientField(func(c *Client) string { return c.Phone }, "[Telefone do Cliente]"),
	"cliente_endereco": clientField(func(c *Client) string { return c.Address }, "[Endereço do Cliente]"),
	"cliente_cidade":   clientField(func(c *Client) string { return c.City }, "[Cidade do Cliente]"),
	"cliente_estado":   clientField(func(c *Client) string { return c.State }, "[Estado do Cliente]"),
	"cliente_cpf_cnpj": clientField(func(c *Client) string { return c.TaxID }, "[CPF/CNPJ do Cliente]"),

	"proposta_numero": proposalField(func(p *Proposal) string { return p.Number }, "[Número da Proposta]"),
	"proposta_titulo": proposalField(func(p *Proposal) string { return p.Title }, "[Título da Proposta]"),
	"proposta_status": proposalField(func(p *Proposal) string { return p.Status }, "[Status da Proposta]"),
	"proposta_data": func(r *Renderer, b *Bundle) string {
		if b.Proposal == nil || b.Proposal.CreatedAt == nil {
			return "[Data da Proposta]"
		}
		return FormatDate(b.Proposal.CreatedAt.In(r.loc))
	},
	"proposta_validade": func(_ *Renderer, b *Bundle) string {
		if b.Proposal == nil || b.Proposal.ValidUntil == nil {
			return "[Validade da Proposta]"
		}
		// Срок действия хранится как календарная дата, зону не переводим.
		return FormatDate(*b.Proposal.ValidUntil)
	},

	"valor_subtotal":  func(_ *Renderer, b *Bundle) string { return FormatCurrency(b.totals().Subtotal) },
	"valor_desconto":  func(_ *Renderer, b *Bundle) string { return FormatCurrency(b.totals().Discount) },
	"valor_acrescimo": func(_ *Renderer, b *Bundle) string { return FormatCurrency(b.totals().Surcharge) },
	"valor_total":     func(_ *Renderer, b *Bundle) string { return FormatCurrency(b.totals().Total) },
	"valor_total_extenso": func(_ *Renderer, b *Bundle) string {
		return ToWords(b.totals().Total)
	},
	"desconto_percentual": func(_ *Renderer, b *Bundle) string {
		if b.Proposal == nil {
			return FormatPercent(0)
		}
		return FormatPercent(floatOrZero(b.Proposal.DiscountPercent))
	},
	"acrescimo_percentual": func(_ *Renderer, b *Bundle) string {
		if b.Proposal == nil {
			return FormatPercent(0)
		}
		return FormatPercent(floatOrZero(b.Proposal.SurchargePercent))
	},

	"servicos_lista":  func(_ *Renderer, b *Bundle) string { return serviceList(b.Services) },
	"servicos_tabela": func(_ *Renderer, b *Bundle) string { return serviceTable(b.Services) },
	"servicos_total":  func(_ *Renderer, b *Bundle) string { return strconv.Itoa(len(b.Services)) },

	"observacoes":         proposalField(func(p *Proposal) string { return p.Notes }, "[Observações]"),
	"condicoes_pagamento": proposalField(func(p *Proposal) string { return p.PaymentTerms }, "[Condições de Pagamento]"),
	"prazo_entrega":       proposalField(func(p *Proposal) string { return p.DeliveryTime }, "[Prazo de Entrega]"),
	"data_atual": func(r *Renderer, _ *Bundle) string {
		return FormatDate(r.now().In(r.loc))
	},
}

func clientField(get func(*Client) string, placeholder string) resolver {
	return func(_ *Renderer, b *Bundle) string {
		if b.Client == nil {
			return placeholder
		}
		return orPlaceholder(get(b.Client), placeholder)
	}
}

func proposalField(get func(*Proposal) string, placeholder string) resolver {
	return func(_ *Renderer, b *Bundle) string {
		if b.Proposal == nil {
			return placeholder
		}
		return orPlaceholder(get(b.Proposal), placeholder)
	}
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

func serviceList(items []ServiceItem) string {
	if len(items) == 0 {
		return "[Lista de Serviços]"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+item.Name+" ("+formatQuantity(item.Quantity)+"x) - R$ "+
			strconv.FormatFloat(item.LineTotal(), 'f', 2, 64))
	}
	return strings.Join(lines, "\n")
}

func serviceTable(items []ServiceItem) string {
	if len(items) == 0 {
		return "[Tabela de Serviços]"
	}
	var sb strings.Builder
	sb.WriteString("<table>\n<thead>\n<tr><th>Serviço</th><th>Qtd</th><th>Valor Unit.</th><th>Total</th></tr>\n</thead>\n<tbody>\n")
	for _, item := range items {
		sb.WriteString("<tr><td>")
		sb.WriteString(html.EscapeString(item.Name))
		sb.WriteString("</td><td>")
		sb.WriteString(formatQuantity(item.Quantity))
		sb.WriteString("</td><td>")
		sb.WriteString(FormatCurrency(item.UnitPrice()))
		sb.WriteString("</td><td>")
		sb.WriteString(FormatCurrency(item.LineTotal()))
		sb.WriteString("</td></tr>\n")
	}
	sb.WriteString("</tbody>\n</table>")
	return sb.String()
}
