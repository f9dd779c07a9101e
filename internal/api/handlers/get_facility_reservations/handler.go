package get_facility_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgUnauthorized      = "не удалось определить пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/reservations
// Query params: courtId, status, date, dateFrom, dateTo (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/reservations - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	params, err := handlers.ParseListQuery(r)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.ListFacilityRequest{
		ActorID:    actorID,
		FacilityID: facilityID,
		Status:     params.Status,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
	}
	if raw := r.URL.Query().Get("courtId"); raw != "" {
		courtID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || courtID <= 0 {
			h.logger.Warn("GET /facilities/{id}/reservations - Invalid courtId: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.CourtID = &courtID
	}

	// Права владельца проверяет сервис
	result, err := h.service.ListForFacility(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /facilities/{id}/reservations - Access denied: facility_id=%d, user_id=%d",
				facilityID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/reservations - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /facilities/{id}/reservations - Failed to get reservations: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/reservations - Reservations retrieved successfully: facility_id=%d, count=%d",
		facilityID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
