package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/customk/booking/internal/booking/domain"
	"github.com/customk/booking/internal/clock"
	"github.com/customk/booking/internal/events"
	occurrencedomain "github.com/customk/booking/internal/occurrence/domain"
	obsmetrics "github.com/customk/booking/internal/observability/metrics"
	referraldomain "github.com/customk/booking/internal/referral/domain"
	"github.com/customk/booking/pkg/db/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	OccurrenceSvc occurrencedomain.Service
	ReferralSvc   referraldomain.Service
	Gateway       domain.Gateway           `optional:"true"`
	Publisher     events.Publisher         `optional:"true"`
	ObsMetrics    *obsmetrics.Metrics      `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	occurrenceSvc occurrencedomain.Service
	referralSvc   referraldomain.Service
	gateway       domain.Gateway
	publisher     events.Publisher
	obsMetrics    *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("booking.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		occurrenceSvc: p.OccurrenceSvc,
		referralSvc:   p.ReferralSvc,
		gateway:       p.Gateway,
		publisher:     p.Publisher,
		obsMetrics:    p.ObsMetrics,
	}
}

var errGatewayUnavailable = errors.New("payment_gateway_unavailable")

func (s *Service) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (domain.CreateOrderResult, error) {
	if s.gateway == nil {
		return domain.CreateOrderResult{}, errGatewayUnavailable
	}
	if amount.IsNegative() || amount.IsZero() {
		return domain.CreateOrderResult{}, domain.ErrInvalidAmount
	}
	return s.gateway.CreateOrder(ctx, amount, currency)
}

// Book records a direct booking. The amount is system-determined (zero for
// free classes) and the record completes immediately, without the gateway.
func (s *Service) Book(ctx context.Context, req domain.BookRequest) (domain.PaymentRecord, error) {
	if err := validateRequest(&req); err != nil {
		return domain.PaymentRecord{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "FREE"
	}

	now := time.Now().UTC()
	payment := domain.PaymentRecord{
		ID:             s.genID.Generate(),
		OrderID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		Status:         domain.StatusCompleted,
		Amount:         req.Amount.Round(2),
		RefundedAmount: decimal.Zero,
		Currency:       currency,
		PaymentMethod:  domain.MethodNone,
		PayerEmail:     req.PayerEmail,
		UserID:         req.UserID,
		OccurrenceID:   req.OccurrenceID,
		Quantity:       req.Quantity,
		ReferralCode:   req.ReferralCode,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.commitBooking(ctx, req, &payment); err != nil {
		return domain.PaymentRecord{}, err
	}
	return payment, nil
}

// BookWithGateway captures the order first. Anything but COMPLETED aborts
// with the gateway's raw response before any local state is touched.
func (s *Service) BookWithGateway(ctx context.Context, orderID string, req domain.BookRequest) (domain.PaymentRecord, error) {
	if s.gateway == nil {
		return domain.PaymentRecord{}, errGatewayUnavailable
	}
	if err := validateRequest(&req); err != nil {
		return domain.PaymentRecord{}, err
	}

	capture, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		return domain.PaymentRecord{}, err
	}
	if capture.Status != "COMPLETED" {
		s.log.Warn("gateway capture not completed",
			zap.String("order_id", orderID),
			zap.String("status", capture.Status),
		)
		s.obsMetrics.RecordBookingFailure("gateway_rejected")
		return domain.PaymentRecord{}, &domain.GatewayError{
			Op:     "capture",
			Status: capture.Status,
			Raw:    capture.Raw,
		}
	}

	now := time.Now().UTC()
	payment := domain.PaymentRecord{
		ID:             s.genID.Generate(),
		OrderID:        capture.OrderID,
		Status:         domain.StatusCompleted,
		Amount:         capture.Amount.Round(2),
		RefundedAmount: decimal.Zero,
		Currency:       capture.Currency,
		PaymentMethod:  domain.MethodPayPal,
		PayerEmail:     capture.PayerEmail,
		UserID:         req.UserID,
		OccurrenceID:   req.OccurrenceID,
		Quantity:       req.Quantity,
		ReferralCode:   req.ReferralCode,
		CaptureID:      capture.CaptureID,
		TransactionID:  capture.CaptureID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.commitBooking(ctx, req, &payment); err != nil {
		return domain.PaymentRecord{}, err
	}
	return payment, nil
}

// commitBooking is the shared unit of work: reserve seats, validate and
// consume the referral code, insert the payment record. The lock order is
// fixed, occurrence before referral. Any failure rolls the whole attempt
// back, so capacity never stays committed for a booking that produced no
// payment record.
func (s *Service) commitBooking(ctx context.Context, req domain.BookRequest, payment *domain.PaymentRecord) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := s.occurrenceSvc.ReserveTx(ctx, tx, req.OccurrenceID, req.Quantity); err != nil {
		if errors.Is(err, occurrencedomain.ErrNotFound) {
			s.log.Warn("booking target missing",
				zap.Int64("occurrence_id", int64(req.OccurrenceID)),
			)
			s.obsMetrics.RecordBookingFailure("occurrence_missing")
			return domain.ErrOccurrenceMissing
		}
		return err
	}

	if req.ReferralCode != "" {
		if _, err := s.referralSvc.VerifyTx(ctx, tx, req.ReferralCode); err != nil {
			if errors.Is(err, referraldomain.ErrInvalidCode) {
				s.obsMetrics.RecordBookingFailure("invalid_referral")
				return domain.ErrInvalidReferralCode
			}
			return err
		}
		if err := s.referralSvc.ConsumeTx(ctx, tx, req.ReferralCode); err != nil {
			if errors.Is(err, referraldomain.ErrNotFound) {
				s.obsMetrics.RecordBookingFailure("referral_expired")
				return domain.ErrReferralExpired
			}
			return err
		}
	}

	if err := s.repo.Insert(ctx, tx, payment); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}
	committed = true

	s.obsMetrics.RecordBooking(payment.PaymentMethod)
	s.publishPaymentCreated(ctx, payment)

	s.log.Info("booking committed",
		zap.String("order_id", payment.OrderID),
		zap.String("method", payment.PaymentMethod),
		zap.Int("quantity", payment.Quantity),
	)
	return nil
}

func (s *Service) publishPaymentCreated(ctx context.Context, payment *domain.PaymentRecord) {
	if s.publisher == nil {
		return
	}
	event := events.PaymentCreated{
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount.StringFixed(2),
		Currency:  payment.Currency,
		CreatedAt: payment.CreatedAt,
	}
	if err := s.publisher.PublishPaymentCreated(ctx, event); err != nil {
		// The booking already committed; notification loss is logged, not fatal.
		s.log.Warn("payment created event publish failed",
			zap.String("order_id", payment.OrderID),
			zap.Error(err),
		)
	}
}

func (s *Service) CancelAndRefund(ctx context.Context, paymentID snowflake.ID) (decimal.Decimal, error) {
	payment, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if payment == nil {
		return decimal.Decimal{}, domain.ErrPaymentNotFound
	}
	if payment.Status == domain.StatusRefunded {
		return decimal.Decimal{}, domain.ErrAlreadyRefunded
	}
	if payment.CaptureID == "" {
		return decimal.Decimal{}, domain.ErrNotRefundable
	}

	occ, err := s.occurrenceSvc.Get(ctx, payment.OccurrenceID)
	if err != nil {
		if errors.Is(err, occurrencedomain.ErrNotFound) {
			return decimal.Decimal{}, domain.ErrOccurrenceMissing
		}
		return decimal.Decimal{}, err
	}

	refund := ComputeRefund(occ.StartDate, payment.Amount, s.clock.Now())
	if refund.IsZero() {
		return decimal.Decimal{}, domain.ErrRefundNotEligible
	}

	if s.gateway == nil {
		return decimal.Decimal{}, errGatewayUnavailable
	}
	result, err := s.gateway.RefundCapture(ctx, payment.CaptureID, refund, payment.Currency)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if result.Status != "COMPLETED" && result.Status != "PENDING" {
		return decimal.Decimal{}, &domain.GatewayError{
			Op:     "refund",
			Status: result.Status,
			Raw:    result.Raw,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.repo.FindByIDForUpdate(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrPaymentNotFound
		}
		if locked.Status == domain.StatusRefunded {
			return domain.ErrAlreadyRefunded
		}
		if err := s.repo.MarkRefunded(ctx, tx, paymentID, refund); err != nil {
			return err
		}
		return s.occurrenceSvc.ReleaseTx(ctx, tx, payment.OccurrenceID, payment.Quantity)
	})
	if err != nil {
		return decimal.Decimal{}, err
	}

	s.obsMetrics.RecordRefund()
	s.log.Info("payment refunded",
		zap.String("order_id", payment.OrderID),
		zap.String("refund_amount", refund.StringFixed(2)),
	)
	return refund, nil
}

func (s *Service) ListPayments(ctx context.Context, userID snowflake.ID, page pagination.Pagination) (domain.ListPaymentsResponse, error) {
	if userID == 0 {
		return domain.ListPaymentsResponse{}, domain.ErrInvalidUser
	}

	total, err := s.repo.CountByUser(ctx, s.db, userID)
	if err != nil {
		return domain.ListPaymentsResponse{}, err
	}
	items, err := s.repo.ListByUser(ctx, s.db, userID, page.Offset(), page.Limit())
	if err != nil {
		return domain.ListPaymentsResponse{}, err
	}

	return domain.ListPaymentsResponse{
		PageInfo: pagination.BuildPageInfo(total, page),
		Payments: items,
	}, nil
}

func (s *Service) DeletePayment(ctx context.Context, paymentID snowflake.ID) error {
	payment, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrPaymentNotFound
	}
	return s.repo.Delete(ctx, s.db, paymentID)
}

func validateRequest(req *domain.BookRequest) error {
	if req.UserID == 0 {
		return domain.ErrInvalidUser
	}
	if req.OccurrenceID == 0 {
		return domain.ErrOccurrenceMissing
	}
	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if req.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	req.ReferralCode = strings.TrimSpace(req.ReferralCode)
	req.PayerEmail = strings.TrimSpace(req.PayerEmail)
	return nil
}
