package service

import (
	"math/rand"
	"testing"

	"github.com/zattar/dashboard_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// makeLead builds a lead with the fields the engine reads.
func makeLead(campanha, cliente, cnpj, empresa string, decisor bool, createdAt string) models.Lead {
	lead := models.Lead{
		ResponsavelEncontrado: boolPtr(decisor),
	}
	if campanha != "" {
		lead.NomeCampanha = strPtr(campanha)
	}
	if cliente != "" {
		lead.NomeCliente = strPtr(cliente)
	}
	if cnpj != "" {
		lead.CNPJ = strPtr(cnpj)
	}
	if empresa != "" {
		lead.NomeEmpresa = strPtr(empresa)
	}
	if createdAt != "" {
		lead.CreatedAt = strPtr(createdAt)
	}
	return lead
}

func findCampaign(t *testing.T, metrics []models.CampaignMetrics, name string) models.CampaignMetrics {
	t.Helper()
	for _, m := range metrics {
		if m.NomeCampanha == name {
			return m
		}
	}
	t.Fatalf("campaign %q not found", name)
	return models.CampaignMetrics{}
}

func TestComputeCampaignMetricsCompleteness(t *testing.T) {
	leads := []models.Lead{
		makeLead("A", "x", "", "", true, ""),
		makeLead("A", "y", "", "", false, ""),
		makeLead("B", "z", "", "", false, ""),
		makeLead("", "w", "", "", false, ""),
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)

	sum := 0
	for _, m := range metrics {
		sum += m.TotalLeads
	}
	assert.Equal(t, len(leads), sum, "every lead lands in exactly one bucket")
}

func TestComputeCampaignMetricsEmptyInput(t *testing.T) {
	metrics := NewAggregator(0).ComputeCampaignMetrics(nil)
	assert.Empty(t, metrics)

	totals := NewAggregator(0).ComputeGlobalTotals(nil)
	assert.Equal(t, 0, totals.TotalLeads)
	assert.Equal(t, float64(0), totals.TaxaSucesso)
	assert.Equal(t, float64(0), totals.MediaTaxaSucesso)
}

func TestRateZeroDivision(t *testing.T) {
	assert.Equal(t, float64(0), rate(0, 0))
	assert.Equal(t, float64(0), rate(5, 0))
	assert.Equal(t, float64(50), rate(1, 2))
}

func TestComputeCampaignMetricsOrderIndependence(t *testing.T) {
	leads := []models.Lead{
		makeLead("A", "x", "1", "X", true, "2024-03-01T08:00:00Z"),
		makeLead("A", "y", "2", "Y", false, "2024-03-02T09:00:00Z"),
		makeLead("B", "z", "3", "Z", true, "2024-03-01T10:00:00Z"),
		makeLead("", "w", "", "", false, ""),
		makeLead("B", "z", "3", "Z", false, "2024-03-03T11:00:00Z"),
	}

	agg := NewAggregator(0)
	reference := agg.ComputeCampaignMetrics(leads)

	for seed := int64(0); seed < 5; seed++ {
		shuffled := make([]models.Lead, len(leads))
		copy(shuffled, leads)
		rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		permuted := agg.ComputeCampaignMetrics(shuffled)
		require.Len(t, permuted, len(reference))

		for _, want := range reference {
			got := findCampaign(t, permuted, want.NomeCampanha)
			assert.Equal(t, want, got, "campaign %s values must not depend on input order", want.NomeCampanha)
		}
	}
}

func TestUniqueContactsDeduplication(t *testing.T) {
	leads := []models.Lead{
		makeLead("camp", "A", "1", "X", false, ""),
		makeLead("camp", "A", "1", "X", false, ""),
		makeLead("camp", "B", "2", "Y", false, ""),
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)
	assert.Equal(t, 2, metrics[0].SociosUnicos)
}

func TestUniqueContactsPerFieldSentinels(t *testing.T) {
	// one lead missing only the name, one missing only the cnpj: different
	// composite keys even though both have one hole
	leads := []models.Lead{
		makeLead("camp", "", "1", "X", false, ""),
		makeLead("camp", "A", "", "X", false, ""),
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)
	assert.Equal(t, 2, metrics[0].SociosUnicos)
}

func TestNullAndEmptyCampaignShareBucket(t *testing.T) {
	empty := ""
	leads := []models.Lead{
		{NomeCampanha: nil},
		{NomeCampanha: &empty},
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)
	assert.Equal(t, models.NoCampaignLabel, metrics[0].NomeCampanha)
	assert.Equal(t, 2, metrics[0].TotalLeads)
}

func TestDailySeriesOrdering(t *testing.T) {
	leads := []models.Lead{
		makeLead("camp", "a", "", "", true, "2024-03-02T10:00:00Z"),
		makeLead("camp", "b", "", "", true, "2024-03-01T09:00:00Z"),
		makeLead("camp", "c", "", "", false, "2024-03-01T08:00:00Z"),
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)

	series := metrics[0].LeadsPorDia
	require.Len(t, series, 2)

	assert.Equal(t, models.DailyPoint{Data: "2024-03-01", Leads: 2, Decisores: 1}, series[0])
	assert.Equal(t, models.DailyPoint{Data: "2024-03-02", Leads: 1, Decisores: 1}, series[1])
}

func TestMalformedDateTolerance(t *testing.T) {
	leads := []models.Lead{
		makeLead("camp", "a", "", "", true, "not-a-date"),
		makeLead("camp", "b", "", "", false, "2024-03-05T12:00:00Z"),
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)

	m := metrics[0]
	assert.Equal(t, 2, m.TotalLeads, "malformed date still counts toward totals")
	require.Len(t, m.LeadsPorDia, 1)
	assert.Equal(t, "2024-03-05", m.LeadsPorDia[0].Data)
	assert.Equal(t, "2024-03-05T12:00:00Z", m.DataInicio)
	assert.Equal(t, "2024-03-05T12:00:00Z", m.DataFim)
}

func TestNullDateExcludedFromSeries(t *testing.T) {
	leads := []models.Lead{
		makeLead("camp", "a", "", "", false, ""),
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)
	assert.Equal(t, 1, metrics[0].TotalLeads)
	assert.Empty(t, metrics[0].LeadsPorDia)
	assert.Equal(t, "", metrics[0].DataInicio)
	assert.Equal(t, "", metrics[0].DataFim)
}

func TestEnrichmentCostDerivation(t *testing.T) {
	leads := make([]models.Lead, 0, 10)
	for i := 0; i < 10; i++ {
		name := string(rune('a' + i))
		leads = append(leads, makeLead("camp", name, "", "", false, ""))
	}

	metrics := NewAggregator(0.30).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)
	assert.Equal(t, 10, metrics[0].SociosUnicos)
	assert.InDelta(t, 3.00, metrics[0].CustoEnriquecimento, 1e-9)
}

func TestConfigurableUnitCost(t *testing.T) {
	leads := []models.Lead{
		makeLead("camp", "a", "", "", false, ""),
		makeLead("camp", "b", "", "", false, ""),
	}

	metrics := NewAggregator(0.50).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)
	assert.InDelta(t, 1.00, metrics[0].CustoEnriquecimento, 1e-9)

	// non-positive cost falls back to the default
	assert.Equal(t, DefaultEnrichmentUnitCost, NewAggregator(0).UnitCost)
	assert.Equal(t, DefaultEnrichmentUnitCost, NewAggregator(-1).UnitCost)
}

func TestEndToEndScenario(t *testing.T) {
	leads := []models.Lead{
		makeLead("Jan", "a", "", "", true, ""),
		makeLead("Jan", "b", "", "", false, ""),
		makeLead("Fev", "c", "", "", false, ""),
		makeLead("Fev", "d", "", "", false, ""),
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 2)

	jan := findCampaign(t, metrics, "Jan")
	assert.Equal(t, 2, jan.TotalLeads)
	assert.Equal(t, 1, jan.DecisoresEncontrados)
	assert.Equal(t, float64(50), jan.TaxaSucesso)

	fev := findCampaign(t, metrics, "Fev")
	assert.Equal(t, 2, fev.TotalLeads)
	assert.Equal(t, 0, fev.DecisoresEncontrados)
	assert.Equal(t, float64(0), fev.TaxaSucesso)
}

func TestDistinctCompanies(t *testing.T) {
	leads := []models.Lead{
		makeLead("camp", "a", "11.111", "X", false, ""),
		makeLead("camp", "b", "11.111", "X", false, ""),
		makeLead("camp", "c", "22.222", "Y", false, ""),
		makeLead("camp", "d", "", "Z", false, ""), // null cnpj not a company
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 1)
	assert.Equal(t, 2, metrics[0].EmpresasDistintas)
}

func TestComputeAgentMetrics(t *testing.T) {
	agent1 := "agente-1"
	leads := []models.Lead{
		{AgenteID: &agent1, ResponsavelEncontrado: boolPtr(true)},
		{AgenteID: &agent1, ResponsavelEncontrado: boolPtr(false)},
		{AgenteID: nil},
	}

	metrics := NewAggregator(0).ComputeAgentMetrics(leads)
	require.Len(t, metrics, 2)

	assert.Equal(t, "agente-1", metrics[0].AgenteID)
	assert.Equal(t, 2, metrics[0].TotalAtendimentos)
	assert.Equal(t, 1, metrics[0].DecisoresEncontrados)
	assert.Equal(t, float64(50), metrics[0].TaxaSucesso)

	assert.Equal(t, models.NoAgentLabel, metrics[1].AgenteID)
	assert.Equal(t, 1, metrics[1].TotalAtendimentos)
	assert.Equal(t, float64(0), metrics[1].TaxaSucesso)
}

func TestGlobalTotalsCampaignScopedSums(t *testing.T) {
	// the same contact in two campaigns counts once per campaign
	leads := []models.Lead{
		makeLead("A", "dup", "1", "X", true, ""),
		makeLead("B", "dup", "1", "X", false, ""),
	}

	totals := NewAggregator(0.30).ComputeGlobalTotals(leads)

	assert.Equal(t, 2, totals.TotalLeads)
	assert.Equal(t, 1, totals.DecisoresEncontrados)
	assert.Equal(t, float64(50), totals.TaxaSucesso)
	assert.Equal(t, 2, totals.TotalSociosUnicos, "uniqueness is campaign-scoped")
	assert.InDelta(t, 0.60, totals.CustoTotal, 1e-9)
	assert.Equal(t, 2, totals.TotalEmpresasDistintas)
	assert.Equal(t, 2, totals.TotalCampanhas)
	assert.Equal(t, float64(50), totals.MediaTaxaSucesso)
}

func TestRankCampaignsBySuccess(t *testing.T) {
	leads := []models.Lead{
		makeLead("low", "a", "", "", false, ""),
		makeLead("high", "b", "", "", true, ""),
		makeLead("mid", "c", "", "", true, ""),
		makeLead("mid", "d", "", "", false, ""),
		makeLead("tied", "e", "", "", false, ""),
	}

	agg := NewAggregator(0)
	campaigns := agg.ComputeCampaignMetrics(leads)
	ranked := RankCampaignsBySuccess(campaigns)

	require.Len(t, ranked, 4)
	assert.Equal(t, "high", ranked[0].NomeCampanha)
	assert.Equal(t, "mid", ranked[1].NomeCampanha)
	// low and tied are both at 0%: first-seen order breaks the tie
	assert.Equal(t, "low", ranked[2].NomeCampanha)
	assert.Equal(t, "tied", ranked[3].NomeCampanha)

	// the input is untouched
	assert.Equal(t, "low", campaigns[0].NomeCampanha)
}

func TestBucketsKeepFirstSeenOrder(t *testing.T) {
	leads := []models.Lead{
		makeLead("C", "a", "", "", false, ""),
		makeLead("A", "b", "", "", false, ""),
		makeLead("C", "c", "", "", false, ""),
		makeLead("B", "d", "", "", false, ""),
	}

	metrics := NewAggregator(0).ComputeCampaignMetrics(leads)
	require.Len(t, metrics, 3)
	assert.Equal(t, "C", metrics[0].NomeCampanha)
	assert.Equal(t, "A", metrics[1].NomeCampanha)
	assert.Equal(t, "B", metrics[2].NomeCampanha)
}
