package controllers

import (
	"github.com/zattar/dashboard_end/service"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
)

// GetCampaignStats serves the campaign analysis view: per-campaign metrics
// with daily series, an overview block and the success-rate ranking. The
// ranking is a presentation-side sort over the computed buckets.
func GetCampaignStats(c *gin.Context) {
	leads, ok := fetchLeadSnapshot()
	if !ok {
		utils.Logger.Warn().Msg("serving empty campaign stats: snapshot unavailable")
	}

	aggregator := newAggregator()

	campaigns := aggregator.ComputeCampaignMetrics(leads)
	totals := aggregator.ComputeGlobalTotals(leads)
	ranking := service.RankCampaignsBySuccess(campaigns)

	utils.SuccessResponse(c, gin.H{
		"campaigns": campaigns,
		"ranking":   ranking,
		"overview": gin.H{
			"totalCampanhas":       totals.TotalCampanhas,
			"totalLeads":           totals.TotalLeads,
			"decisoresEncontrados": totals.DecisoresEncontrados,
			"mediaTaxaSucesso":     totals.MediaTaxaSucesso,
		},
	}, "")
}
