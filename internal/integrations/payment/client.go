package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// IntentGetter часть клиента Stripe для чтения PaymentIntent
type IntentGetter interface {
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StripeClient читает статус онлайн-оплаты по ID PaymentIntent
type StripeClient struct {
	intents IntentGetter
	log     Logger
}

// NewStripeClient создает клиента со своим ключом, без глобального stripe.Key
func NewStripeClient(secretKey string, log Logger) *StripeClient {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return NewClient(sc.PaymentIntents, log)
}

// NewClient создает клиента поверх произвольной реализации IntentGetter
func NewClient(intents IntentGetter, log Logger) *StripeClient {
	return &StripeClient{intents: intents, log: log}
}

// PaymentStatus возвращает статус платежа
// succeeded -> PAID; canceled, requires_payment_method -> FAILED; остальное PENDING
func (c *StripeClient) PaymentStatus(ctx context.Context, reference string) (*domain.OnlinePayment, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	intent, err := c.intents.Get(reference, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			c.log.Warn("PaymentIntent %s not found", reference)
			return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, reference)
		}
		return nil, fmt.Errorf("%w: failed to get payment intent %s: %v", ErrInternal, reference, err)
	}

	payment := &domain.OnlinePayment{
		Reference: intent.ID,
		Status:    mapStatus(intent.Status),
		Amount:    float64(intent.Amount) / 100,
	}
	if payment.Status == domain.PaymentPaid {
		if intent.LatestCharge != nil && intent.LatestCharge.Created > 0 {
			payment.PaidAt = unixTime(intent.LatestCharge.Created)
		} else if intent.Created > 0 {
			payment.PaidAt = unixTime(intent.Created)
		}
	}

	c.log.Info("PaymentIntent %s status=%s mapped to %s", reference, intent.Status, payment.Status)
	return payment, nil
}

func mapStatus(status stripe.PaymentIntentStatus) domain.PaymentStatus {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return domain.PaymentPaid
	case stripe.PaymentIntentStatusCanceled, stripe.PaymentIntentStatusRequiresPaymentMethod:
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}

func unixTime(sec int64) *time.Time {
	t := time.Unix(sec, 0).UTC()
	return &t
}

// DisabledClient используется, когда онлайн-оплата выключена
type DisabledClient struct{}

func (DisabledClient) PaymentStatus(context.Context, string) (*domain.OnlinePayment, error) {
	return nil, ErrDisabled
}
