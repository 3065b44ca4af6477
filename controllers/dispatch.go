package controllers

import (
	"net/http"
	"strings"

	"github.com/zattar/dashboard_end/config"
	"github.com/zattar/dashboard_end/service"
	"github.com/zattar/dashboard_end/utils"

	"github.com/gin-gonic/gin"
)

// dispatcher forwards validated submissions; replaced in tests.
var dispatcher = service.NewDispatchService(config.LoadConfig().DispatchWebhookURL)

// PostDispatch validates a campaign submission and forwards it to the
// external webhook. Validation failures never reach the network; submission
// failures are surfaced verbatim.
func PostDispatch(c *gin.Context) {
	nomeCampanha := strings.TrimSpace(c.PostForm("nomeCampanha"))
	mensagemModelo := strings.TrimSpace(c.PostForm("mensagemModelo"))

	if nomeCampanha == "" {
		utils.ErrorResponse(c, "Nome da campanha é obrigatório", http.StatusBadRequest)
		return
	}
	if mensagemModelo == "" {
		utils.ErrorResponse(c, "Mensagem modelo é obrigatória", http.StatusBadRequest)
		return
	}

	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		utils.ErrorResponse(c, "Arquivo CSV é obrigatório", http.StatusBadRequest)
		return
	}

	if !service.IsCSVUpload(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		utils.ErrorResponse(c, "Por favor, selecione apenas arquivos CSV", http.StatusBadRequest)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to open upload")
		utils.ErrorResponse(c, "Erro ao ler o arquivo enviado", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if _, err := service.ValidateCSVHeader(file); err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusBadRequest)
		return
	}

	// rewind after header validation
	if _, err := file.Seek(0, 0); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to rewind upload")
		utils.ErrorResponse(c, "Erro ao ler o arquivo enviado", http.StatusInternalServerError)
		return
	}

	req := &service.DispatchRequest{
		NomeCampanha:   nomeCampanha,
		MensagemModelo: mensagemModelo,
		FileName:       fileHeader.Filename,
		File:           file,
	}

	if err := dispatcher.Send(c.Request.Context(), req); err != nil {
		utils.Logger.Error().Err(err).Str("campanha", nomeCampanha).Msg("dispatch failed")
		utils.ErrorResponse(c, err.Error(), http.StatusBadGateway)
		return
	}

	utils.Logger.Info().Str("campanha", nomeCampanha).Msg("dispatch forwarded")
	utils.SuccessResponse(c, nil, "Disparo iniciado com sucesso")
}
