package get_service_fit

import (
	"context"

	getServiceFit "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_service_fit"
)

type GetServiceFitUseCase interface {
	Execute(ctx context.Context, req *getServiceFit.Request) (*getServiceFit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
