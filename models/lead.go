package models

import (
	"fmt"
	"strings"
	"time"
)

// Bucket sentinels for leads missing a grouping field. The per-field contact
// sentinels keep "missing name" distinguishable from "missing cnpj" inside the
// composite key.
const (
	NoCampaignLabel = "Sem campanha"
	NoAgentLabel    = "Sem agente"

	noNameSentinel    = "sem-nome"
	noCNPJSentinel    = "sem-cnpj"
	noCompanySentinel = "sem-empresa"
)

// Lead is one row of the leads table: a single contact attempt, optionally
// tied to a campaign and an agent. Almost every column is nullable upstream,
// so nullable columns are pointers and all default substitution lives in the
// accessor methods below rather than in the consumers.
type Lead struct {
	ID        int64   `bson:"id" json:"id"`
	CreatedAt *string `bson:"created_at,omitempty" json:"created_at"`

	// contact attributes
	NomeCliente     *string `bson:"nome_cliente,omitempty" json:"nome_cliente"`
	NomeEmpresa     *string `bson:"nome_empresa,omitempty" json:"nome_empresa"`
	CNPJ            *string `bson:"cnpj,omitempty" json:"cnpj"`
	NumeroFormatado *string `bson:"numero_formatado,omitempty" json:"numero_formatado"`
	EmailUsuario    *string `bson:"email_usuario,omitempty" json:"email_usuario"`
	SiteUsuario     *string `bson:"site_usuario,omitempty" json:"site_usuario"`

	// campaign / agent assignment
	NomeCampanha *string `bson:"nome_campanha,omitempty" json:"nome_campanha"`
	AgenteID     *string `bson:"agente_id,omitempty" json:"agente_id"`

	// outcome flags
	ResponsavelEncontrado *bool `bson:"responsavel_encontrado,omitempty" json:"responsavel_encontrado"`
	ResponsavelSeguro     *bool `bson:"responsavel_seguro,omitempty" json:"responsavel_seguro"`
	AtendimentoFinalizado *bool `bson:"atendimentofinalizado,omitempty" json:"atendimentofinalizado"`
	ExisteWhatsapp        *bool `bson:"existe_whatsapp,omitempty" json:"existe_whatsapp"`

	// interaction metadata
	UserLastInteraction *string `bson:"user_lastinteraction,omitempty" json:"user_lastinteraction"`
	DataAgendamento     *string `bson:"data_agendamento,omitempty" json:"data_agendamento"`
	HoraAgendamento     *string `bson:"hora_agendamento,omitempty" json:"hora_agendamento"`
	Tokens              *int    `bson:"tokens,omitempty" json:"tokens"`
}

// CampaignKey returns the campaign bucket for the lead.
func (l *Lead) CampaignKey() string {
	if l.NomeCampanha == nil || *l.NomeCampanha == "" {
		return NoCampaignLabel
	}
	return *l.NomeCampanha
}

// AgentKey returns the agent bucket for the lead.
func (l *Lead) AgentKey() string {
	if l.AgenteID == nil || *l.AgenteID == "" {
		return NoAgentLabel
	}
	return *l.AgenteID
}

// ContactKey builds the composite dedup key for unique-contact counting:
// client name + cnpj + company name, each replaced by its own sentinel when
// absent. Known approximation: two leads missing all three fields collapse
// into one contact.
func (l *Lead) ContactKey() string {
	return fmt.Sprintf("%s-%s-%s",
		strValue(l.NomeCliente, noNameSentinel),
		strValue(l.CNPJ, noCNPJSentinel),
		strValue(l.NomeEmpresa, noCompanySentinel),
	)
}

// CreatedDate returns the calendar-day prefix of created_at (YYYY-MM-DD) and
// whether it is usable for date bucketing. Null or malformed timestamps are
// reported unusable; the lead still counts toward totals.
func (l *Lead) CreatedDate() (string, bool) {
	if l.CreatedAt == nil {
		return "", false
	}
	day, _, _ := strings.Cut(*l.CreatedAt, "T")
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return "", false
	}
	return day, true
}

// DecisionMakerFound reports the outcome flag with the null-as-false rule.
func (l *Lead) DecisionMakerFound() bool {
	return l.ResponsavelEncontrado != nil && *l.ResponsavelEncontrado
}

// Finished reports whether the contact attempt was closed out.
func (l *Lead) Finished() bool {
	return l.AtendimentoFinalizado != nil && *l.AtendimentoFinalizado
}

// HasWhatsapp reports whether the phone number exists on WhatsApp.
func (l *Lead) HasWhatsapp() bool {
	return l.ExisteWhatsapp != nil && *l.ExisteWhatsapp
}

// TokenCount returns the token usage counter, 0 when absent.
func (l *Lead) TokenCount() int {
	if l.Tokens == nil {
		return 0
	}
	return *l.Tokens
}

func strValue(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
