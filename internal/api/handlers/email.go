package handlers

import (
	"net/http"

	"github.com/NipunKodeboyena/KnockKnock/internal/api/dto"
	"github.com/NipunKodeboyena/KnockKnock/internal/api/middleware"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/dispatch"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/generation"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/utils"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/validator"
)

// EmailHandler handles generation and dispatch requests
type EmailHandler struct {
	generator generation.Service
	sender    dispatch.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(
	generator generation.Service,
	sender dispatch.Service,
	log *logger.Logger,
	val *validator.Validator,
) *EmailHandler {
	return &EmailHandler{
		generator: generator,
		sender:    sender,
		logger:    log,
		validator: val,
	}
}

// Generate handles email generation
// @Summary Generate a cold outreach email
// @Description Spends one credit to generate a personalized email with the LLM
// @Tags Email
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation input"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Not enough credits"
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Failure 500 {object} utils.ErrorResponse "Generation failed"
// @Router /generate [post]
func (h *EmailHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateRequest
	if appErr := decodeJSON(w, r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := h.validator.Check(req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := authorizeUser(r, req.UserID); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	middleware.AddLogField(r, "user_id", req.UserID)

	res, err := h.generator.Generate(r.Context(), generation.GenerateInput{
		UserID:   req.UserID,
		Prompt:   req.Prompt,
		JobTitle: req.JobTitle,
		Company:  req.Company,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.GenerateResponse{
		Email:            res.Email,
		RemainingCredits: res.RemainingCredits,
	})
}

// SendEmail handles email dispatch
// @Summary Send an email through the user's Gmail account
// @Tags Email
// @Accept json
// @Produce json
// @Param request body dto.SendEmailRequest true "Message"
// @Success 200 {object} dto.SendEmailResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "No linked Gmail account"
// @Failure 500 {object} utils.ErrorResponse "Token refresh or send failed"
// @Router /send-email [post]
func (h *EmailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.SendEmailRequest
	if appErr := decodeJSON(w, r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := h.validator.Check(req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := authorizeUser(r, req.UserID); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	middleware.AddLogField(r, "user_id", req.UserID)

	err := h.sender.Send(r.Context(), dispatch.SendInput{
		UserID:  req.UserID,
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.SendEmailResponse{Status: "sent"})
}
