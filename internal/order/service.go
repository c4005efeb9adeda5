package order

import (
	"context"
	"fmt"
	"time"

	"campusmart-be/internal/apperr"
	"campusmart-be/internal/cart"
	"campusmart-be/internal/logger"
	"campusmart-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Service is the order ledger: it turns cart lines into orders, issues
// and verifies OTPs, and owns the status transitions.
type Service interface {
	// Checkout creates one Pending order per cart line and clears the
	// cart, all in one transactional boundary. Returns the raw OTPs for
	// out-of-band delivery; they are never retrievable again.
	Checkout(ctx context.Context, buyerID string) ([]PlacedOrder, error)

	// GenerateOTP re-issues the order's OTP, invalidating the previous
	// one. Seller-only. The raw value goes to the notification sink,
	// never back through the API.
	GenerateOTP(ctx context.Context, sellerID, orderID string) error

	// Complete verifies the entered OTP and performs the terminal
	// Pending -> Completed transition. Seller-only.
	Complete(ctx context.Context, sellerID, orderID, enteredOTP string) (Order, error)

	ListForBuyer(ctx context.Context, buyerID string) ([]Order, error)
	ListForSeller(ctx context.Context, sellerID string) ([]Order, error)
	ListToDeliver(ctx context.Context, sellerID string) ([]Order, error)
}

type service struct {
	repo      Repository
	cartRepo  cart.Repository
	sink      NotificationSink
	devBypass bool
	attempts  *attemptLimiter
}

func NewService(repo Repository, cartRepo cart.Repository, sink NotificationSink, devBypass bool) Service {
	return &service{
		repo:      repo,
		cartRepo:  cartRepo,
		sink:      sink,
		devBypass: devBypass,
		attempts:  newAttemptLimiter(rate.Every(10*time.Second), 5),
	}
}

func (s *service) Checkout(ctx context.Context, buyerID string) ([]PlacedOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("buyer_id", buyerID),
	)

	items, err := s.cartRepo.GetItems(ctx, buyerID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", apperr.ErrInvalidState)
	}

	// One order per cart line. A multi-item purchase from one seller
	// still yields independent orders, each settled by its own OTP.
	drafts := make([]draft, 0, len(items))
	rawOTPs := make([]string, 0, len(items))

	for _, item := range items {
		rawOTP, err := generateOTP()
		if err != nil {
			return nil, err
		}
		hash, err := hashOTP(rawOTP)
		if err != nil {
			return nil, err
		}

		drafts = append(drafts, draft{
			TransactionID: uuid.NewString(),
			SellerID:      item.Product.SellerID,
			TotalPrice:    item.Product.Price * float64(item.Quantity),
			OTPHash:       hash,
			Item: LineItem{
				ProductID:       item.Product.ID,
				ProductName:     item.Product.Name,
				Quantity:        item.Quantity,
				PriceAtPurchase: item.Product.Price,
			},
		})
		rawOTPs = append(rawOTPs, rawOTP)
	}

	orders, err := s.repo.CreateOrdersTx(ctx, buyerID, drafts)
	if err != nil {
		log.Error("checkout transaction failed", zap.Error(err))
		return nil, err
	}

	placed := make([]PlacedOrder, 0, len(orders))
	for i, o := range orders {
		placed = append(placed, PlacedOrder{OrderID: o.ID, RawOTP: rawOTPs[i]})
		metrics.OrdersPlaced.Inc()
	}

	log.Info("orders placed", zap.Int("count", len(placed)))
	return placed, nil
}

func (s *service) GenerateOTP(ctx context.Context, sellerID, orderID string) error {
	o, err := s.loadForSeller(ctx, sellerID, orderID)
	if err != nil {
		return err
	}
	if o.Status.Terminal() {
		return fmt.Errorf("order %s already completed: %w", orderID, apperr.ErrInvalidState)
	}

	rawOTP, err := generateOTP()
	if err != nil {
		return err
	}
	hash, err := hashOTP(rawOTP)
	if err != nil {
		return err
	}

	// Overwriting the hash invalidates any previously issued OTP.
	if err := s.repo.UpdateOTPHash(ctx, orderID, hash); err != nil {
		return err
	}

	s.sink.OTPIssued(ctx, o.ID, o.BuyerID, rawOTP)
	return nil
}

func (s *service) Complete(ctx context.Context, sellerID, orderID, enteredOTP string) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Complete"),
		zap.String("order_id", orderID),
	)

	if !validOTPFormat(enteredOTP) {
		return Order{}, fmt.Errorf("OTP must be 6 digits: %w", apperr.ErrInvalidState)
	}

	o, err := s.loadForSeller(ctx, sellerID, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.Status.Terminal() {
		return Order{}, fmt.Errorf("order %s already completed: %w", orderID, apperr.ErrInvalidState)
	}

	if !s.attempts.Allow(orderID) {
		log.Warn("otp attempts throttled")
		metrics.OTPFailures.Inc()
		return Order{}, fmt.Errorf("too many attempts: %w", apperr.ErrInvalidOTP)
	}

	bypassed := s.devBypass && enteredOTP == DevBypassOTP
	if !bypassed && !verifyOTP(enteredOTP, o.OTPHash) {
		log.Warn("otp rejected")
		metrics.OTPFailures.Inc()
		return Order{}, apperr.ErrInvalidOTP
	}

	transitioned, err := s.repo.MarkCompleted(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !transitioned {
		// A concurrent completion won the conditional write.
		return Order{}, fmt.Errorf("order %s already completed: %w", orderID, apperr.ErrInvalidState)
	}

	metrics.OrdersCompleted.Inc()
	log.Info("order completed", zap.String("transaction_id", o.TransactionID))

	o.Status = StatusCompleted
	return o, nil
}

func (s *service) ListForBuyer(ctx context.Context, buyerID string) ([]Order, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

func (s *service) ListForSeller(ctx context.Context, sellerID string) ([]Order, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *service) ListToDeliver(ctx context.Context, sellerID string) ([]Order, error) {
	return s.repo.ListToDeliver(ctx, sellerID)
}

// loadForSeller fetches the order and enforces that the caller is its
// seller of record.
func (s *service) loadForSeller(ctx context.Context, sellerID, orderID string) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.SellerID != sellerID {
		return Order{}, fmt.Errorf("order %s belongs to another seller: %w", orderID, apperr.ErrForbidden)
	}
	return o, nil
}
