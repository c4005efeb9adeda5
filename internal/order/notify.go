package order

import (
	"context"

	"campusmart-be/internal/logger"

	"go.uber.org/zap"
)

// NotificationSink delivers a freshly issued OTP to the buyer over a
// channel independent of the seller's API response.
type NotificationSink interface {
	OTPIssued(ctx context.Context, orderID, buyerID, rawOTP string)
}

// logSink simulates out-of-band delivery by logging the code. A real
// deployment would push to mail/SMS instead.
type logSink struct{}

func NewLogSink() NotificationSink {
	return logSink{}
}

func (logSink) OTPIssued(ctx context.Context, orderID, buyerID, rawOTP string) {
	logger.FromCtx(ctx).Info("otp issued, delivering to buyer",
		zap.String("order_id", orderID),
		zap.String("buyer_id", buyerID),
		zap.String("otp", rawOTP),
	)
}
