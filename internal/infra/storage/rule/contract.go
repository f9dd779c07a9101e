package rule

import "github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
