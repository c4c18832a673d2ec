package render

// Category группирует токены в интерфейсе выбора переменных.
type Category string

const (
	CategoryClient   Category = "cliente"
	CategoryProposal Category = "proposta"
	CategoryValues   Category = "valores"
	CategoryServices Category = "servicos"
	CategoryOther    Category = "outros"
)

// TokenInfo описывает переменную шаблона для списка в UI.
type TokenInfo struct {
	Label    string   `json:"label" yaml:"label"`
	Token    string   `json:"token" yaml:"token"`
	Category Category `json:"category" yaml:"category"`
}

// Key возвращает ключ без фигурных скобок.
func (t TokenInfo) Key() string {
	return t.Token[2 : len(t.Token)-2]
}

var catalog = []TokenInfo{
	{Label: "Nome do Cliente", Token: "{{cliente_nome}}", Category: CategoryClient},
	{Label: "Empresa do Cliente", Token: "{{cliente_empresa}}", Category: CategoryClient},
	{Label: "Email do Cliente", Token: "{{cliente_email}}", Category: CategoryClient},
	{Label: "Telefone do Cliente", Token: "{{cliente_telefone}}", Category: CategoryClient},
	{Label: "Endereço do Cliente", Token: "{{cliente_endereco}}", Category: CategoryClient},
	{Label: "Cidade do Cliente", Token: "{{cliente_cidade}}", Category: CategoryClient},
	{Label: "Estado do Cliente", Token: "{{cliente_estado}}", Category: CategoryClient},
	{Label: "CPF/CNPJ do Cliente", Token: "{{cliente_cpf_cnpj}}", Category: CategoryClient},

	{Label: "Número da Proposta", Token: "{{proposta_numero}}", Category: CategoryProposal},
	{Label: "Título da Proposta", Token: "{{proposta_titulo}}", Category: CategoryProposal},
	{Label: "Data da Proposta", Token: "{{proposta_data}}", Category: CategoryProposal},
	{Label: "Validade da Proposta", Token: "{{proposta_validade}}", Category: CategoryProposal},
	{Label: "Status da Proposta", Token: "{{proposta_status}}", Category: CategoryProposal},

	{Label: "Subtotal", Token: "{{valor_subtotal}}", Category: CategoryValues},
	{Label: "Valor do Desconto", Token: "{{valor_desconto}}", Category: CategoryValues},
	{Label: "Valor do Acréscimo", Token: "{{valor_acrescimo}}", Category: CategoryValues},
	{Label: "Valor Total", Token: "{{valor_total}}", Category: CategoryValues},
	{Label: "Valor Total por Extenso", Token: "{{valor_total_extenso}}", Category: CategoryValues},
	{Label: "Desconto (%)", Token: "{{desconto_percentual}}", Category: CategoryValues},
	{Label: "Acréscimo (%)", Token: "{{acrescimo_percentual}}", Category: CategoryValues},

	{Label: "Lista de Serviços", Token: "{{servicos_lista}}", Category: CategoryServices},
	{Label: "Tabela de Serviços", Token: "{{servicos_tabela}}", Category: CategoryServices},
	{Label: "Total de Serviços", Token: "{{servicos_total}}", Category: CategoryServices},

	{Label: "Observações", Token: "{{observacoes}}", Category: CategoryOther},
	{Label: "Data Atual", Token: "{{data_atual}}", Category: CategoryOther},
	{Label: "Condições de Pagamento", Token: "{{condicoes_pagamento}}", Category: CategoryOther},
	{Label: "Prazo de Entrega", Token: "{{prazo_entrega}}", Category: CategoryOther},
}

var categoryColors = map[Category]string{
	CategoryClient:   "bg-blue-100 text-blue-800",
	CategoryProposal: "bg-green-100 text-green-800",
	CategoryValues:   "bg-yellow-100 text-yellow-800",
	CategoryServices: "bg-purple-100 text-purple-800",
	CategoryOther:    "bg-gray-100 text-gray-800",
}

// Catalog возвращает копию списка доступных переменных.
func Catalog() []TokenInfo {
	out := make([]TokenInfo, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogByCategory группирует переменные по категориям.
func CatalogByCategory() map[Category][]TokenInfo {
	out := make(map[Category][]TokenInfo)
	for _, t := range catalog {
		out[t.Category] = append(out[t.Category], t)
	}
	return out
}

// CategoryColors возвращает CSS-классы категорий.
func CategoryColors() map[Category]string {
	out := make(map[Category]string, len(categoryColors))
	for k, v := range categoryColors {
		out[k] = v
	}
	return out
}
