package lockmanager

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

// New выбирает реализацию секции по имени стратегии из конфига.
// redisClient нужен только для StrategyRedis.
func New(strategy string, txManager TransactionManager, db dbmetrics.DBExecutor, redisClient RedisClient, redisOpts ...RedisOption) (Section, error) {
	switch strategy {
	case StrategySerializable:
		return NewSerializableSection(txManager), nil
	case StrategyAdvisory, "":
		return NewAdvisorySection(txManager, db), nil
	case StrategyRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("%w: redis strategy requires a redis client", ErrUnknownStrategy)
		}
		return NewRedisSection(redisClient, txManager, redisOpts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}
