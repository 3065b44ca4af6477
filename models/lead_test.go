package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func TestCampaignKey(t *testing.T) {
	assert.Equal(t, NoCampaignLabel, (&Lead{}).CampaignKey())
	assert.Equal(t, NoCampaignLabel, (&Lead{NomeCampanha: strPtr("")}).CampaignKey())
	assert.Equal(t, "Abril", (&Lead{NomeCampanha: strPtr("Abril")}).CampaignKey())
}

func TestAgentKey(t *testing.T) {
	assert.Equal(t, NoAgentLabel, (&Lead{}).AgentKey())
	assert.Equal(t, NoAgentLabel, (&Lead{AgenteID: strPtr("")}).AgentKey())
	assert.Equal(t, "ag-7", (&Lead{AgenteID: strPtr("ag-7")}).AgentKey())
}

func TestContactKeySentinels(t *testing.T) {
	full := &Lead{
		NomeCliente: strPtr("João"),
		CNPJ:        strPtr("123"),
		NomeEmpresa: strPtr("Acme"),
	}
	assert.Equal(t, "João-123-Acme", full.ContactKey())

	empty := &Lead{}
	assert.Equal(t, "sem-nome-sem-cnpj-sem-empresa", empty.ContactKey())

	// each missing field keeps its own sentinel
	noName := &Lead{CNPJ: strPtr("123"), NomeEmpresa: strPtr("Acme")}
	noCNPJ := &Lead{NomeCliente: strPtr("João"), NomeEmpresa: strPtr("Acme")}
	assert.NotEqual(t, noName.ContactKey(), noCNPJ.ContactKey())
}

func TestCreatedDate(t *testing.T) {
	day, ok := (&Lead{CreatedAt: strPtr("2024-03-01T09:30:00Z")}).CreatedDate()
	assert.True(t, ok)
	assert.Equal(t, "2024-03-01", day)

	_, ok = (&Lead{}).CreatedDate()
	assert.False(t, ok)

	_, ok = (&Lead{CreatedAt: strPtr("not-a-date")}).CreatedDate()
	assert.False(t, ok)

	// date-only value is a valid day
	day, ok = (&Lead{CreatedAt: strPtr("2024-03-01")}).CreatedDate()
	assert.True(t, ok)
	assert.Equal(t, "2024-03-01", day)

	// impossible calendar date
	_, ok = (&Lead{CreatedAt: strPtr("2024-13-99T00:00:00Z")}).CreatedDate()
	assert.False(t, ok)
}

func TestOutcomeFlagsNullAsFalse(t *testing.T) {
	lead := &Lead{}
	assert.False(t, lead.DecisionMakerFound())
	assert.False(t, lead.Finished())
	assert.False(t, lead.HasWhatsapp())

	lead = &Lead{
		ResponsavelEncontrado: boolPtr(true),
		AtendimentoFinalizado: boolPtr(false),
		ExisteWhatsapp:        boolPtr(true),
	}
	assert.True(t, lead.DecisionMakerFound())
	assert.False(t, lead.Finished())
	assert.True(t, lead.HasWhatsapp())
}

func TestTokenCountDefault(t *testing.T) {
	assert.Equal(t, 0, (&Lead{}).TokenCount())
	assert.Equal(t, 42, (&Lead{Tokens: intPtr(42)}).TokenCount())
}
