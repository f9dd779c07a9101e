package facilityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/tracing"
)

// Client клиент для работы с FacilityService (корты, площадки, владельцы)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента FacilityService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: tracing.HTTPTransport(nil),
		},
		log: log,
	}
}

// GetCourt получает корт вместе с идентификатором его площадки
func (c *Client) GetCourt(ctx context.Context, courtID int64) (*domain.Court, error) {
	url := fmt.Sprintf("%s/internal/courts/%d", c.baseURL, courtID)

	var court Court
	if err := c.get(ctx, url, ErrCourtNotFound, &court); err != nil {
		if err != ErrCourtNotFound {
			c.log.Error("GetCourt: request for court_id=%d failed: %v", courtID, err)
		}
		return nil, err
	}

	return court.toDomain(), nil
}

// GetFacility получает площадку со списком владельцев
func (c *Client) GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error) {
	url := fmt.Sprintf("%s/internal/facilities/%d", c.baseURL, facilityID)

	var facility Facility
	if err := c.get(ctx, url, ErrFacilityNotFound, &facility); err != nil {
		if err != ErrFacilityNotFound {
			c.log.Error("GetFacility: request for facility_id=%d failed: %v", facilityID, err)
		}
		return nil, err
	}

	return facility.toDomain(), nil
}

func (c *Client) get(ctx context.Context, url string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid id format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
