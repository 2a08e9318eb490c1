package create_package

import (
	"context"

	createPackage "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_package"
)

type CreatePackageUseCase interface {
	Execute(ctx context.Context, req *createPackage.Request) (*createPackage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
