package handlers

import (
	"net/http"

	"github.com/NipunKodeboyena/KnockKnock/internal/api/dto"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/utils"
)

// Root handles the service banner
// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} dto.RootResponse
// @Router / [get]
func Root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, dto.RootResponse{Message: "KnockKnock backend is running"})
}
