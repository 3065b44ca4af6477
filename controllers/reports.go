package controllers

import (
	"github.com/zattar/dashboard_end/config"
	"github.com/zattar/dashboard_end/service"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
)

// newAggregator builds the engine with the configured unit cost.
func newAggregator() *service.Aggregator {
	return service.NewAggregator(config.LoadConfig().EnrichmentUnitCost)
}

// GetReports computes the full report view: campaign metrics, agent metrics
// and the global totals, all from one snapshot.
func GetReports(c *gin.Context) {
	leads, ok := fetchLeadSnapshot()
	if !ok {
		utils.Logger.Warn().Msg("serving empty report: snapshot unavailable")
	}

	aggregator := newAggregator()

	campaignMetrics := aggregator.ComputeCampaignMetrics(leads)
	agentMetrics := aggregator.ComputeAgentMetrics(leads)
	totals := aggregator.ComputeGlobalTotals(leads)

	utils.Logger.Info().
		Int("leads", len(leads)).
		Int("campanhas", len(campaignMetrics)).
		Int("agentes", len(agentMetrics)).
		Msg("report computed")

	utils.SuccessResponse(c, gin.H{
		"campaignMetrics": campaignMetrics,
		"agentMetrics":    agentMetrics,
		"totals":          totals,
	}, "")
}
