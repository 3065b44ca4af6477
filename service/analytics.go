package service

import (
	"sort"

	"github.com/zattar/dashboard_end/models"
)

// DefaultEnrichmentUnitCost is the fallback price per unique contact, in BRL.
const DefaultEnrichmentUnitCost = 0.30

// Aggregator computes campaign, agent and global metrics from a full lead
// snapshot. It is a pure in-memory computation: no I/O, no shared state, and
// it never fails; irregular input degrades to documented defaults.
type Aggregator struct {
	// UnitCost is the enrichment price per unique contact.
	UnitCost float64
}

// NewAggregator creates an Aggregator with the given unit cost. A zero or
// negative cost falls back to the default.
func NewAggregator(unitCost float64) *Aggregator {
	if unitCost <= 0 {
		unitCost = DefaultEnrichmentUnitCost
	}
	return &Aggregator{UnitCost: unitCost}
}

// campaignBucket carries the per-campaign accumulators that do not appear in
// the output struct directly.
type campaignBucket struct {
	metrics   models.CampaignMetrics
	contacts  map[string]struct{}
	companies map[string]struct{}
	daily     map[string]*models.DailyPoint
}

// ComputeCampaignMetrics groups the snapshot by campaign name and fills in
// counts, rates, unique-contact sets, cost and the daily series. Buckets are
// returned in first-seen order; callers wanting a ranking sort the result
// themselves.
func (a *Aggregator) ComputeCampaignMetrics(leads []models.Lead) []models.CampaignMetrics {
	buckets := make(map[string]*campaignBucket)
	var order []string

	for i := range leads {
		lead := &leads[i]
		key := lead.CampaignKey()

		bucket, ok := buckets[key]
		if !ok {
			bucket = &campaignBucket{
				metrics:   models.CampaignMetrics{NomeCampanha: key},
				contacts:  make(map[string]struct{}),
				companies: make(map[string]struct{}),
				daily:     make(map[string]*models.DailyPoint),
			}
			buckets[key] = bucket
			order = append(order, key)
		}

		m := &bucket.metrics
		m.TotalLeads++

		if lead.DecisionMakerFound() {
			m.DecisoresEncontrados++
		}
		if lead.Finished() {
			m.AtendimentosFinalizados++
		}

		bucket.contacts[lead.ContactKey()] = struct{}{}
		if lead.CNPJ != nil && *lead.CNPJ != "" {
			bucket.companies[*lead.CNPJ] = struct{}{}
		}

		// date-dependent fields only see well-formed timestamps
		if day, ok := lead.CreatedDate(); ok {
			created := *lead.CreatedAt
			if m.DataInicio == "" || created < m.DataInicio {
				m.DataInicio = created
			}
			if m.DataFim == "" || created > m.DataFim {
				m.DataFim = created
			}

			point, ok := bucket.daily[day]
			if !ok {
				point = &models.DailyPoint{Data: day}
				bucket.daily[day] = point
			}
			point.Leads++
			if lead.DecisionMakerFound() {
				point.Decisores++
			}
		}
	}

	result := make([]models.CampaignMetrics, 0, len(order))
	for _, key := range order {
		bucket := buckets[key]
		m := bucket.metrics

		m.TaxaSucesso = rate(m.DecisoresEncontrados, m.TotalLeads)
		m.TaxaFinalizacao = rate(m.AtendimentosFinalizados, m.TotalLeads)
		m.SociosUnicos = len(bucket.contacts)
		m.CustoEnriquecimento = float64(m.SociosUnicos) * a.UnitCost
		m.EmpresasDistintas = len(bucket.companies)

		m.LeadsPorDia = make([]models.DailyPoint, 0, len(bucket.daily))
		for _, point := range bucket.daily {
			m.LeadsPorDia = append(m.LeadsPorDia, *point)
		}
		sort.Slice(m.LeadsPorDia, func(i, j int) bool {
			return m.LeadsPorDia[i].Data < m.LeadsPorDia[j].Data
		})

		result = append(result, m)
	}

	return result
}

// ComputeAgentMetrics groups the snapshot by agent id, in first-seen order.
func (a *Aggregator) ComputeAgentMetrics(leads []models.Lead) []models.AgentMetrics {
	buckets := make(map[string]*models.AgentMetrics)
	var order []string

	for i := range leads {
		lead := &leads[i]
		key := lead.AgentKey()

		m, ok := buckets[key]
		if !ok {
			m = &models.AgentMetrics{AgenteID: key}
			buckets[key] = m
			order = append(order, key)
		}

		m.TotalAtendimentos++
		if lead.DecisionMakerFound() {
			m.DecisoresEncontrados++
		}
	}

	result := make([]models.AgentMetrics, 0, len(order))
	for _, key := range order {
		m := *buckets[key]
		m.TaxaSucesso = rate(m.DecisoresEncontrados, m.TotalAtendimentos)
		result = append(result, m)
	}

	return result
}

// ComputeGlobalTotals reduces the whole snapshot. Contact, cost and company
// totals are sums over the campaign buckets, so cross-campaign duplicates are
// counted once per campaign.
func (a *Aggregator) ComputeGlobalTotals(leads []models.Lead) models.GlobalTotals {
	totals := models.GlobalTotals{TotalLeads: len(leads)}

	for i := range leads {
		if leads[i].DecisionMakerFound() {
			totals.DecisoresEncontrados++
		}
		if leads[i].Finished() {
			totals.AtendimentosFinalizados++
		}
	}
	totals.TaxaSucesso = rate(totals.DecisoresEncontrados, totals.TotalLeads)

	campaigns := a.ComputeCampaignMetrics(leads)
	totals.TotalCampanhas = len(campaigns)

	var rateSum float64
	for _, c := range campaigns {
		totals.TotalSociosUnicos += c.SociosUnicos
		totals.CustoTotal += c.CustoEnriquecimento
		totals.TotalEmpresasDistintas += c.EmpresasDistintas
		rateSum += c.TaxaSucesso
	}
	if len(campaigns) > 0 {
		totals.MediaTaxaSucesso = rateSum / float64(len(campaigns))
	}

	return totals
}

// RankCampaignsBySuccess returns a copy sorted by success rate descending.
// Presentation concern, kept out of the aggregation itself; ties keep the
// first-seen bucket order.
func RankCampaignsBySuccess(campaigns []models.CampaignMetrics) []models.CampaignMetrics {
	ranked := make([]models.CampaignMetrics, len(campaigns))
	copy(ranked, campaigns)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TaxaSucesso > ranked[j].TaxaSucesso
	})
	return ranked
}

// rate converts a count pair into a percentage, 0 when the base is empty.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
