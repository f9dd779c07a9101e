package update_policy

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/policy"
)

const (
	msgInvalidID          = "некорректный ID корта или площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "не удалось определить пользователя"
	msgInvalidPolicy      = "некорректные значения политики"
	msgCourtNotFound      = "корт не найден"
	msgFacilityNotFound   = "площадка не найдена"
	msgForbidden          = "изменять политику может только владелец площадки"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/facilities/{facilityId}/policy и PUT /api/v1/courts/{courtId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Уровень определяется переменной пути
	var (
		facilityID int64
		courtID    *int64
		err        error
	)
	if _, isCourt := mux.Vars(r)["courtId"]; isCourt {
		var id int64
		id, err = handlers.PathInt64(r, "courtId")
		courtID = &id
	} else {
		facilityID, err = handlers.PathInt64(r, "facilityId")
	}
	if err != nil {
		h.logger.Warn("PUT /policy - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(userID, facilityID, courtID))
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /policy - Invalid policy: user_id=%d, error=%v", userID, err)
			handlers.RespondUnprocessable(w, msgInvalidPolicy)

		case errors.Is(err, policy.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, policy.ErrFacilityNotFound):
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("PUT /policy - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /policy - Failed to save policy: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /policy - Policy saved: override_id=%d, scope=%s, user_id=%d", result.ID, result.Scope, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
