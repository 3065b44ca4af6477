package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/zattar/dashboard_end/utils"
)

// Required CSV header columns of the dispatch contract; email and cnpj are
// accepted as optional extras.
var dispatchRequiredColumns = []string{"nome", "empresa", "telefone"}

// DispatchRequest is a validated outbound campaign submission.
type DispatchRequest struct {
	NomeCampanha   string
	MensagemModelo string
	FileName       string
	File           io.Reader
}

// DispatchService forwards campaign submissions to the external webhook.
type DispatchService struct {
	WebhookURL string
	Client     *http.Client
}

// NewDispatchService creates a DispatchService for the given webhook.
func NewDispatchService(webhookURL string) *DispatchService {
	return &DispatchService{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// ValidateCSVHeader checks the uploaded file against the documented contract:
// header row with nome, empresa and telefone, optionally email and cnpj.
// It returns the parsed header on success.
func ValidateCSVHeader(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("arquivo CSV vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler cabeçalho do CSV: %w", err)
	}

	seen := make(map[string]bool, len(header))
	for _, col := range header {
		seen[strings.ToLower(strings.TrimSpace(col))] = true
	}

	var missing []string
	for _, col := range dispatchRequiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("colunas obrigatórias ausentes no CSV: %s", strings.Join(missing, ", "))
	}

	// at least one data row
	if _, err := reader.Read(); err == io.EOF {
		return nil, fmt.Errorf("arquivo CSV não contém registros")
	} else if err != nil {
		return nil, fmt.Errorf("falha ao ler registros do CSV: %w", err)
	}

	return header, nil
}

// IsCSVUpload reports whether the uploaded file looks like a CSV by extension
// or declared media type.
func IsCSVUpload(filename, contentType string) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return true
	}
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(mediaType) == "text/csv"
}

// Send forwards the submission as a multipart POST. Any 2xx status is
// success; anything else is surfaced verbatim, no retry.
func (s *DispatchService) Send(ctx context.Context, req *DispatchRequest) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("nomeCampanha", req.NomeCampanha); err != nil {
		return fmt.Errorf("falha ao montar formulário: %w", err)
	}
	if err := writer.WriteField("mensagemModelo", req.MensagemModelo); err != nil {
		return fmt.Errorf("falha ao montar formulário: %w", err)
	}

	part, err := writer.CreateFormFile("arquivo", req.FileName)
	if err != nil {
		return fmt.Errorf("falha ao montar formulário: %w", err)
	}
	if _, err := io.Copy(part, req.File); err != nil {
		return fmt.Errorf("falha ao anexar arquivo: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("falha ao montar formulário: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, &body)
	if err != nil {
		return fmt.Errorf("falha ao criar requisição: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	utils.Logger.Info().
		Str("campanha", req.NomeCampanha).
		Str("arquivo", req.FileName).
		Msg("forwarding dispatch to webhook")

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("erro ao enviar dados: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("erro no servidor: %d", resp.StatusCode)
	}

	return nil
}
