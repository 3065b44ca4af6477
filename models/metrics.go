package models

// DailyPoint is one calendar day of a campaign series.
type DailyPoint struct {
	Data      string `json:"data"` // YYYY-MM-DD
	Leads     int    `json:"leads"`
	Decisores int    `json:"decisores"`
}

// CampaignMetrics aggregates one campaign bucket.
type CampaignMetrics struct {
	NomeCampanha            string       `json:"nome_campanha"`
	TotalLeads              int          `json:"total_leads"`
	DecisoresEncontrados    int          `json:"decisores_encontrados"`
	TaxaSucesso             float64      `json:"taxa_sucesso"`
	AtendimentosFinalizados int          `json:"atendimentos_finalizados"`
	TaxaFinalizacao         float64      `json:"taxa_finalizacao"`
	SociosUnicos            int          `json:"socios_unicos"`
	CustoEnriquecimento     float64      `json:"custo_enriquecimento"`
	EmpresasDistintas       int          `json:"empresas_distintas"`
	DataInicio              string       `json:"data_inicio"`
	DataFim                 string       `json:"data_fim"`
	LeadsPorDia             []DailyPoint `json:"leads_por_dia"`
}

// AgentMetrics aggregates one agent bucket.
type AgentMetrics struct {
	AgenteID             string  `json:"agente_id"`
	TotalAtendimentos    int     `json:"total_atendimentos"`
	DecisoresEncontrados int     `json:"decisores_encontrados"`
	TaxaSucesso          float64 `json:"taxa_sucesso"`
}

// GlobalTotals is the whole-base reduction. The contact/cost/company sums are
// accumulated over campaign buckets, so a contact appearing in two campaigns
// counts twice; uniqueness is campaign-scoped.
type GlobalTotals struct {
	TotalLeads              int     `json:"total_leads"`
	DecisoresEncontrados    int     `json:"decisores_encontrados"`
	AtendimentosFinalizados int     `json:"atendimentos_finalizados"`
	TaxaSucesso             float64 `json:"taxa_sucesso"`
	TotalSociosUnicos       int     `json:"total_socios_unicos"`
	CustoTotal              float64 `json:"custo_total"`
	TotalEmpresasDistintas  int     `json:"total_empresas_distintas"`
	TotalCampanhas          int     `json:"total_campanhas"`
	MediaTaxaSucesso        float64 `json:"media_taxa_sucesso"`
}
