package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Generator строит базовую доступность корта из недельных правил
type Generator struct {
	ruleRepo RuleRepository
}

// NewGenerator создает генератор базовой доступности
func NewGenerator(ruleRepo RuleRepository) *Generator {
	return &Generator{ruleRepo: ruleRepo}
}

// GenerateBase возвращает по одному интервалу на каждое активное правило дня недели date.
// Интервал через полночь относится к запрошенной дате целиком.
func (g *Generator) GenerateBase(ctx context.Context, courtID int64, date time.Time) ([]types.Interval, error) {
	rules, err := g.ruleRepo.GetActiveByCourtAndDay(ctx, courtID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("%w: GenerateBase - repository error: %v", ErrInternal, err)
	}

	base := make([]types.Interval, 0, len(rules))
	for _, rule := range rules {
		if !rule.AppliesTo(date) {
			continue
		}
		if err := rule.Validate(); err != nil {
			// некорректное правило пропускаем
			continue
		}
		base = append(base, rule.Interval())
	}

	return base, nil
}

// BaseSpans переводит базовые интервалы на линейную ось даты и объединяет их
func BaseSpans(base []types.Interval) []types.Span {
	spans := make([]types.Span, 0, len(base))
	for _, iv := range base {
		spans = append(spans, iv.Span())
	}
	return types.MergeSpans(spans)
}
