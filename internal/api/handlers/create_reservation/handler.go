package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgUnauthorized        = "не удалось определить пользователя"
	msgInvalidInput        = "некорректные данные бронирования"
	msgInvalidTimeRange    = "время начала должно быть раньше времени окончания"
	msgMisaligned          = "время не совпадает с сеткой слотов"
	msgDateInPast          = "время бронирования уже прошло"
	msgOutsideAvailability = "корт не работает в выбранное время"
	msgDurationTooShort    = "длительность бронирования меньше допустимой"
	msgDurationTooLong     = "длительность бронирования больше допустимой"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgSlotConflict        = "выбранный интервал уже занят"
	msgCourtNotFound       = "корт не найден"
	msgBusy                = "корт сейчас бронируется другим пользователем, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createReservation.ErrBusy):
			h.logger.Warn("POST /reservations - Court busy: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondServiceUnavailable(w, msgBusy)

		case errors.Is(err, createReservation.ErrCourtNotFound):
			h.logger.Warn("POST /reservations - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrMisaligned):
			handlers.RespondBadRequest(w, msgMisaligned)

		case errors.Is(err, createReservation.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrOutsideAvailability):
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, createReservation.ErrDurationTooShort):
			handlers.RespondUnprocessable(w, msgDurationTooShort)

		case errors.Is(err, createReservation.ErrDurationTooLong):
			handlers.RespondUnprocessable(w, msgDurationTooLong)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			handlers.RespondUnprocessable(w, msgDateTooFar)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, court_id=%d",
		result.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
