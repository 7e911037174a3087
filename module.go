// Package booking is the payment and capacity core of the class-booking
// marketplace. It reserves seats on scheduled class occurrences, consumes
// referral discount codes, records payments captured through PayPal and
// computes time-based refunds on cancellation. The surrounding web layer
// mounts Module into its fx application and calls the domain services.
package booking

import (
	"github.com/bwmarrin/snowflake"
	bookingmod "github.com/customk/booking/internal/booking"
	bookingdomain "github.com/customk/booking/internal/booking/domain"
	"github.com/customk/booking/internal/clock"
	"github.com/customk/booking/internal/config"
	"github.com/customk/booking/internal/events"
	"github.com/customk/booking/internal/logger"
	occurrencemod "github.com/customk/booking/internal/occurrence"
	occurrencedomain "github.com/customk/booking/internal/occurrence/domain"
	"github.com/customk/booking/internal/observability/metrics"
	referralmod "github.com/customk/booking/internal/referral"
	referraldomain "github.com/customk/booking/internal/referral/domain"
	"github.com/customk/booking/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// NewSnowflakeNode provides the ID generator shared by all domains.
func NewSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

// Module wires the whole booking core into an enclosing fx application.
var Module = fx.Options(
	config.Module,
	logger.Module,
	db.Module,
	clock.Module,
	metrics.Module,
	events.Module,
	fx.Provide(NewSnowflakeNode),
	occurrencemod.Module,
	referralmod.Module,
	bookingmod.Module,
)

// AutoMigrate creates the tables owned by this core.
func AutoMigrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&occurrencedomain.ScheduledOccurrence{},
		&referraldomain.ReferralCode{},
		&bookingdomain.PaymentRecord{},
	)
}
