package enquiry_transition

import (
	"context"

	lifecycle "github.com/m04kA/SMC-TimberService/internal/usecase/enquiry_lifecycle"
)

type LifecycleUseCase interface {
	MarkUnderReview(ctx context.Context, id int64) (*lifecycle.Response, error)
	AcceptRequestedTime(ctx context.Context, id int64, req *lifecycle.AcceptRequest) (*lifecycle.Response, error)
	ProposeAlternateTime(ctx context.Context, id int64, req *lifecycle.ProposeRequest) (*lifecycle.Response, error)
	Schedule(ctx context.Context, id int64) (*lifecycle.Response, error)
	MarkInProgress(ctx context.Context, id int64) (*lifecycle.Response, error)
	MarkCompleted(ctx context.Context, id int64) (*lifecycle.Response, error)
	Cancel(ctx context.Context, id int64) (*lifecycle.Response, error)
	Reject(ctx context.Context, id int64) (*lifecycle.Response, error)
	MarkOfflinePaymentReceived(ctx context.Context, id int64, req *lifecycle.OfflinePaymentRequest) (*lifecycle.Response, error)
	SyncOnlinePayment(ctx context.Context, id int64) (*lifecycle.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
