package schedule_from_text

import (
	"context"

	scheduleFromText "github.com/m04kA/SMC-SalonScheduler/internal/usecase/schedule_from_text"
)

type ScheduleFromTextUseCase interface {
	Execute(ctx context.Context, req *scheduleFromText.Request) (*scheduleFromText.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
