package get_slots

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var errNoDuration = errors.New("at least one duration is required")

// parseDurations разбирает повторяющийся параметр duration (?duration=60&duration=90)
func parseDurations(r *http.Request) ([]int, error) {
	raw := r.URL.Query()["duration"]
	if len(raw) == 0 {
		return nil, errNoDuration
	}
	if len(raw) > domain.MaxRequestedSlotDurations {
		return nil, fmt.Errorf("at most %d durations are allowed", domain.MaxRequestedSlotDurations)
	}

	durations := make([]int, 0, len(raw))
	for _, s := range raw {
		d, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("duration %q: %w", s, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration must be positive, got %d", d)
		}
		durations = append(durations, d)
	}
	return durations, nil
}
