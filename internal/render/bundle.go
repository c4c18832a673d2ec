package render

import "time"

// Bundle объединяет данные, которые подставляются в шаблон документа.
// Любое поле может отсутствовать: вместо ошибки рендерер подставит плейсхолдер.
type Bundle struct {
	Proposal *Proposal     `json:"proposta,omitempty" yaml:"proposta,omitempty"`
	Client   *Client       `json:"cliente,omitempty" yaml:"cliente,omitempty"`
	Services []ServiceItem `json:"servicos,omitempty" yaml:"servicos,omitempty"`
	Company  *Company      `json:"empresa,omitempty" yaml:"empresa,omitempty"`
}

// Proposal данные предложения для шаблона.
type Proposal struct {
	Number           string     `json:"numero,omitempty" yaml:"numero,omitempty"`
	Title            string     `json:"titulo,omitempty" yaml:"titulo,omitempty"`
	Status           string     `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	ValidUntil       *time.Time `json:"data_validade,omitempty" yaml:"data_validade,omitempty"`
	Subtotal         *float64   `json:"subtotal,omitempty" yaml:"subtotal,omitempty"`
	DiscountPercent  *float64   `json:"desconto_percentual,omitempty" yaml:"desconto_percentual,omitempty"`
	SurchargePercent *float64   `json:"acrescimo_percentual,omitempty" yaml:"acrescimo_percentual,omitempty"`
	Total            *float64   `json:"valor_total,omitempty" yaml:"valor_total,omitempty"`
	PaymentTerms     string     `json:"condicoes_pagamento,omitempty" yaml:"condicoes_pagamento,omitempty"`
	DeliveryTime     string     `json:"prazo_entrega,omitempty" yaml:"prazo_entrega,omitempty"`
	Notes            string     `json:"observacoes,omitempty" yaml:"observacoes,omitempty"`
}

// Client данные клиента.
type Client struct {
	Name    string `json:"nome,omitempty" yaml:"nome,omitempty"`
	Company string `json:"empresa,omitempty" yaml:"empresa,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone   string `json:"telefone,omitempty" yaml:"telefone,omitempty"`
	Address string `json:"endereco,omitempty" yaml:"endereco,omitempty"`
	City    string `json:"cidade,omitempty" yaml:"cidade,omitempty"`
	State   string `json:"estado,omitempty" yaml:"estado,omitempty"`
	TaxID   string `json:"cpf_cnpj,omitempty" yaml:"cpf_cnpj,omitempty"`
}

// ServiceItem строка услуги в предложении.
type ServiceItem struct {
	Name          string   `json:"nome" yaml:"nome"`
	Quantity      float64  `json:"quantidade" yaml:"quantidade"`
	Price         float64  `json:"preco" yaml:"preco"`
	OverridePrice *float64 `json:"preco_unitario,omitempty" yaml:"preco_unitario,omitempty"`
}

// UnitPrice возвращает эффективную цену: переопределённую, если она задана.
func (s ServiceItem) UnitPrice() float64 {
	if s.OverridePrice != nil {
		return *s.OverridePrice
	}
	return s.Price
}

// LineTotal эффективная цена × количество.
func (s ServiceItem) LineTotal() float64 {
	return s.UnitPrice() * s.Quantity
}

// Company зарезервирована под реквизиты компании-исполнителя.
type Company struct {
	Name    string `json:"nome,omitempty" yaml:"nome,omitempty"`
	TaxID   string `json:"cnpj,omitempty" yaml:"cnpj,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone   string `json:"telefone,omitempty" yaml:"telefone,omitempty"`
	Address string `json:"endereco,omitempty" yaml:"endereco,omitempty"`
	LogoURL string `json:"logo_url,omitempty" yaml:"logo_url,omitempty"`
}

// Totals денежные показатели предложения.
type Totals struct {
	Subtotal  float64
	Discount  float64
	Surcharge float64
	Total     float64
}

// ComputeTotals считает скидку и надбавку от subtotal и итог.
func ComputeTotals(subtotal, discountPercent, surchargePercent float64) Totals {
	discount := subtotal * discountPercent / 100
	surcharge := subtotal * surchargePercent / 100
	return Totals{
		Subtotal:  subtotal,
		Discount:  discount,
		Surcharge: surcharge,
		Total:     subtotal - discount + surcharge,
	}
}

// totals применяет ComputeTotals к данным бандла; заявленный итог имеет приоритет.
func (b *Bundle) totals() Totals {
	p := b.Proposal
	if p == nil {
		return Totals{}
	}
	t := ComputeTotals(floatOrZero(p.Subtotal), floatOrZero(p.DiscountPercent), floatOrZero(p.SurchargePercent))
	if p.Total != nil {
		t.Total = *p.Total
	}
	return t
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
