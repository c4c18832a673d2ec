package render

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fixedRenderer() *Renderer {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	return New(WithLocation(time.UTC), WithClock(func() time.Time { return now }))
}

func sampleBundle() Bundle {
	created := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	validUntil := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	return Bundle{
		Proposal: &Proposal{
			Number:           "PROP-20240601-0001",
			Title:            "Site institucional",
			Status:           "enviada",
			CreatedAt:        &created,
			ValidUntil:       &validUntil,
			Subtotal:         ptr(1000.0),
			DiscountPercent:  ptr(10.0),
			SurchargePercent: ptr(5.0),
			PaymentTerms:     "50% na assinatura",
			DeliveryTime:     "30 dias",
			Notes:            "Hospedagem não inclusa",
		},
		Client: &Client{
			Name:    "Maria Souza",
			Company: "Souza & Filhos",
			Email:   "maria@example.com",
			City:    "Campinas",
			State:   "SP",
			TaxID:   "12.345.678/0001-90",
		},
		Services: []ServiceItem{
			{Name: "Design", Quantity: 2, Price: 300},
			{Name: "Desenvolvimento", Quantity: 1, Price: 500, OverridePrice: ptr(400.0)},
		},
	}
}

func TestRender_NoTokensIsIdentity(t *testing.T) {
	r := fixedRenderer()
	for _, tpl := range []string{"", "texto simples", "{{desconhecido}}", "{ {cliente_nome} }", "{{ cliente_nome }}"} {
		assert.Equal(t, tpl, r.Render(tpl, sampleBundle()))
	}
}

func TestRender_TotalExample(t *testing.T) {
	out := Render("Total: {{valor_total}}", Bundle{Proposal: &Proposal{Total: ptr(1234.5)}})
	assert.Equal(t, "Total: R$ 1.234,50", out)
}

func TestRender_MissingClient(t *testing.T) {
	assert.Equal(t, "[Nome do Cliente]", Render("{{cliente_nome}}", Bundle{}))
	assert.Equal(t, "[Nome do Cliente]", Render("{{cliente_nome}}", Bundle{Client: &Client{}}))
}

func TestRender_Placeholders(t *testing.T) {
	tpl := "{{proposta_numero}}|{{proposta_data}}|{{proposta_validade}}|{{observacoes}}|{{servicos_lista}}|{{servicos_tabela}}|{{servicos_total}}"
	out := fixedRenderer().Render(tpl, Bundle{})
	assert.Equal(t, "[Número da Proposta]|[Data da Proposta]|[Validade da Proposta]|[Observações]|[Lista de Serviços]|[Tabela de Serviços]|0", out)
}

func TestRender_MonetaryWithoutProposal(t *testing.T) {
	out := Render("{{valor_subtotal}} {{valor_desconto}} {{valor_total}} {{desconto_percentual}} {{valor_total_extenso}}", Bundle{})
	assert.Equal(t, "R$ 0,00 R$ 0,00 R$ 0,00 0.00% zero reais", out)
}

func TestRender_ComputedTotal(t *testing.T) {
	b := sampleBundle()
	out := Render("{{valor_subtotal}}|{{valor_desconto}}|{{valor_acrescimo}}|{{valor_total}}|{{desconto_percentual}}|{{acrescimo_percentual}}", b)
	assert.Equal(t, "R$ 1.000,00|R$ 100,00|R$ 50,00|R$ 950,00|10.00%|5.00%", out)
}

func TestRender_StatedTotalWins(t *testing.T) {
	b := sampleBundle()
	b.Proposal.Total = ptr(21.5)
	assert.Equal(t, "vinte e um reais e cinquenta centavos", Render("{{valor_total_extenso}}", b))
}

func TestRender_FullDocument(t *testing.T) {
	tpl := "Proposta {{proposta_numero}} - {{proposta_titulo}}\n" +
		"Cliente: {{cliente_nome}} ({{cliente_empresa}}), {{cliente_cidade}}/{{cliente_estado}}\n" +
		"Telefone: {{cliente_telefone}}\n" +
		"Data: {{proposta_data}} Validade: {{proposta_validade}} Hoje: {{data_atual}}\n" +
		"{{servicos_lista}}\n" +
		"Pagamento: {{condicoes_pagamento}}; Prazo: {{prazo_entrega}}"

	want := "Proposta PROP-20240601-0001 - Site institucional\n" +
		"Cliente: Maria Souza (Souza & Filhos), Campinas/SP\n" +
		"Telefone: [Telefone do Cliente]\n" +
		"Data: 01/06/2024 Validade: 01/07/2024 Hoje: 10/06/2024\n" +
		"• Design (2x) - R$ 600.00\n" +
		"• Desenvolvimento (1x) - R$ 400.00\n" +
		"Pagamento: 50% na assinatura; Prazo: 30 dias"

	got := fixedRenderer().Render(tpl, sampleBundle())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_RepeatedTokensResolveIdentically(t *testing.T) {
	out := Render("{{cliente_nome}} / {{cliente_nome}} / {{cliente_nome}}", sampleBundle())
	assert.Equal(t, "Maria Souza / Maria Souza / Maria Souza", out)
}

func TestRender_ServiceCount(t *testing.T) {
	assert.Equal(t, "2", Render("{{servicos_total}}", sampleBundle()))
}

func TestRender_ServiceTable(t *testing.T) {
	b := sampleBundle()
	b.Services = append(b.Services, ServiceItem{Name: "<script>", Quantity: 3, Price: 1000})
	out := Render("{{servicos_tabela}}", b)

	require.True(t, strings.HasPrefix(out, "<table>"))
	assert.Equal(t, len(b.Services)+1, strings.Count(out, "<tr>"))
	assert.Contains(t, out, "<th>Serviço</th><th>Qtd</th><th>Valor Unit.</th><th>Total</th>")
	assert.Contains(t, out, "<tr><td>Desenvolvimento</td><td>1</td><td>R$ 400,00</td><td>R$ 400,00</td></tr>")
	assert.Contains(t, out, "<td>&lt;script&gt;</td><td>3</td><td>R$ 1.000,00</td><td>R$ 3.000,00</td>")
}

func TestRender_Idempotent(t *testing.T) {
	r := fixedRenderer()
	tpl := "{{cliente_nome}} {{valor_total}} {{servicos_tabela}} {{data_atual}} {{outro}}"
	once := r.Render(tpl, sampleBundle())
	assert.Equal(t, once, r.Render(once, sampleBundle()))
}

func TestRender_ResolvedValuesAreNotRescanned(t *testing.T) {
	b := Bundle{Client: &Client{Name: "{{cliente_email}}", Email: "x@example.com"}}
	assert.Equal(t, "{{cliente_email}} x@example.com", Render("{{cliente_nome}} {{cliente_email}}", b))
}

func TestRender_DoesNotMutateBundle(t *testing.T) {
	b := sampleBundle()
	before := *b.Proposal
	_ = Render("{{valor_total}} {{servicos_tabela}}", b)
	assert.Equal(t, before, *b.Proposal)
	assert.Nil(t, b.Proposal.Total)
}

func TestRender_ProposalDateUsesLocation(t *testing.T) {
	created := time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC)
	b := Bundle{Proposal: &Proposal{CreatedAt: &created}}
	r := New(WithLocation(time.FixedZone("BRT", -3*60*60)))
	assert.Equal(t, "31/05/2024", r.Render("{{proposta_data}}", b))
}

func TestRenderAny(t *testing.T) {
	assert.Equal(t, ErrorMarker, RenderAny(42, Bundle{}))
	assert.Equal(t, ErrorMarker, RenderAny(nil, Bundle{}))
	assert.Equal(t, "[Nome do Cliente]", RenderAny("{{cliente_nome}}", Bundle{}))
}

func TestServiceItem_UnitPrice(t *testing.T) {
	assert.Equal(t, 10.0, ServiceItem{Price: 10}.UnitPrice())
	assert.Equal(t, 0.0, ServiceItem{Price: 10, OverridePrice: ptr(0.0)}.UnitPrice())
}
