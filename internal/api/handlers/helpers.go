package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/NipunKodeboyena/KnockKnock/internal/api/middleware"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/utils"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *errors.AppError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.BadRequest("Invalid request body")
	}
	return nil
}

// authorizeUser rejects requests whose token subject differs from the body's
// user_id. Without caller authentication it always passes.
func authorizeUser(r *http.Request, userID string) *errors.AppError {
	subject, ok := middleware.GetUserID(r)
	if !ok {
		return nil
	}
	if subject != userID {
		return errors.Forbidden("Token does not belong to user_id")
	}
	return nil
}

// writeServiceError maps a service failure onto the response
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	if appErr, ok := errors.As(err); ok {
		utils.WriteError(w, appErr)
		return
	}
	log.ErrorWithErr(err, "Unhandled service error")
	utils.WriteError(w, errors.Internal("Internal server error", err))
}
