package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/zattar/dashboard_end/models"
	"github.com/zattar/dashboard_end/repository"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
)

// leadQueryTimeout bounds the snapshot fetch.
const leadQueryTimeout = 15 * time.Second

// fetchLeadSnapshot loads the full lead table. A fetch failure degrades to a
// loaded-but-empty state; the caller decides what to do with the flag.
func fetchLeadSnapshot() ([]models.Lead, bool) {
	queryCtx, cancel := context.WithTimeout(repository.GetContext(), leadQueryTimeout)
	defer cancel()

	leads, err := repository.FetchAllLeads(queryCtx)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to load lead snapshot")
		return []models.Lead{}, false
	}
	return leads, true
}

// GetLeads lists leads with the optional in-memory filters of the
// atendimentos view: free-text search, outcome status and campaign.
func GetLeads(c *gin.Context) {
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	status := c.Query("status")     // decisor | sem_decisor | finalizado | em_andamento
	campanha := c.Query("campanha") // exact campaign name

	leads, ok := fetchLeadSnapshot()
	if !ok {
		utils.SuccessResponse(c, gin.H{"leads": leads, "total": 0}, "")
		return
	}

	filtered := make([]models.Lead, 0, len(leads))
	for i := range leads {
		lead := &leads[i]

		if search != "" && !leadMatchesSearch(lead, search) {
			continue
		}
		if !leadMatchesStatus(lead, status) {
			continue
		}
		if campanha != "" && lead.CampaignKey() != campanha {
			continue
		}

		filtered = append(filtered, *lead)
	}

	utils.SuccessResponse(c, gin.H{
		"leads": filtered,
		"total": len(leads),
	}, "")
}

// GetCampaignNames returns the distinct non-empty campaign names.
func GetCampaignNames(c *gin.Context) {
	leads, _ := fetchLeadSnapshot()

	seen := make(map[string]bool)
	campanhas := []string{}
	for i := range leads {
		if leads[i].NomeCampanha == nil || *leads[i].NomeCampanha == "" {
			continue
		}
		name := *leads[i].NomeCampanha
		if !seen[name] {
			seen[name] = true
			campanhas = append(campanhas, name)
		}
	}

	utils.SuccessResponse(c, gin.H{"campanhas": campanhas}, "")
}

// leadMatchesSearch checks the free-text filter against the contact fields.
func leadMatchesSearch(lead *models.Lead, search string) bool {
	for _, field := range []*string{
		lead.NomeCliente,
		lead.NomeEmpresa,
		lead.NumeroFormatado,
		lead.EmailUsuario,
	} {
		if field != nil && strings.Contains(strings.ToLower(*field), search) {
			return true
		}
	}
	return false
}

// leadMatchesStatus applies the outcome status filter.
func leadMatchesStatus(lead *models.Lead, status string) bool {
	switch status {
	case "decisor":
		return lead.DecisionMakerFound()
	case "sem_decisor":
		return !lead.DecisionMakerFound()
	case "finalizado":
		return lead.Finished()
	case "em_andamento":
		return !lead.Finished()
	default:
		return true
	}
}
