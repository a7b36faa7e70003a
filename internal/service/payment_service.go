package service

import (
	"errors"
	"fmt"
	"time"

	"akaraka_backend/internal/config"
	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/util"
	"akaraka_backend/pkg/logger"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
	"github.com/stripe/stripe-go/v76/customer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService struct {
	SubscriptionRepo *repository.SubscriptionRepository
	PaymentRepo      *repository.PaymentRepository
	UserRepo         *repository.UserRepository
}

func NewPaymentService(
	subscriptionRepo *repository.SubscriptionRepository,
	paymentRepo *repository.PaymentRepository,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *PaymentService {
	stripe.Key = cfg.Stripe.SecretKey
	return &PaymentService{
		SubscriptionRepo: subscriptionRepo,
		PaymentRepo:      paymentRepo,
		UserRepo:         userRepo,
	}
}

func (s *PaymentService) Plans() ([]model.SubscriptionPlan, error) {
	return s.SubscriptionRepo.ListActivePlans()
}

type CheckoutInput struct {
	PlanID      uint   `json:"planId" binding:"required"`
	StripeToken string `json:"stripeToken" binding:"required"`
	Yearly      bool   `json:"yearly"`
}

// Checkout charges the card token for one subscription period and upgrades
// the user on success. A declined card records a failed payment and returns
// ErrPaymentFailed; other stripe failures surface as-is.
func (s *PaymentService) Checkout(userID uint, input CheckoutInput) (*model.Payment, error) {
	plan, err := s.SubscriptionRepo.FindPlanByID(input.PlanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	amount := plan.PriceMonthly
	period := 30 * 24 * time.Hour
	if input.Yearly {
		amount = plan.PriceYearly
		period = 365 * 24 * time.Hour
	}

	payment := &model.Payment{
		UserID:        userID,
		PlanID:        &plan.ID,
		Amount:        amount,
		Currency:      "USD",
		Method:        "stripe",
		Status:        model.PaymentPending,
		TransactionID: model.GenerateUUID(),
	}

	cust, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.Name),
	})
	if err != nil {
		return nil, err
	}

	chargeParams := &stripe.ChargeParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Customer: stripe.String(cust.ID),
		Description: stripe.String(
			fmt.Sprintf("Akaraka %s subscription", plan.Name)),
	}
	if err := chargeParams.SetSource(input.StripeToken); err != nil {
		return nil, err
	}

	ch, err := charge.New(chargeParams)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			payment.Status = model.PaymentFailed
			if createErr := s.PaymentRepo.Create(payment); createErr != nil {
				logger.Log.Error("failed to record declined payment", zap.Error(createErr))
			}
			return nil, util.ErrPaymentFailed
		}
		return nil, err
	}

	now := time.Now()
	payment.Status = model.PaymentCompleted
	payment.StripeChargeID = ch.ID
	payment.PaidAt = &now
	if err := s.PaymentRepo.Create(payment); err != nil {
		return nil, err
	}

	endDate := now.Add(period)
	sub := &model.UserSubscription{
		UserID:           userID,
		PlanID:           &plan.ID,
		Status:           model.SubActive,
		StartDate:        now,
		EndDate:          endDate,
		AutoRenew:        true,
		StripeCustomerID: cust.ID,
	}
	if err := s.SubscriptionRepo.Upsert(sub); err != nil {
		return nil, err
	}

	user.SubscriptionTier = plan.Name
	user.SubscriptionExpires = &endDate
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Log.Info("subscription activated",
		zap.Uint("userId", userID),
		zap.String("plan", string(plan.Name)),
		zap.Time("expires", endDate),
	)
	return payment, nil
}

// Cancel turns off auto-renew; access continues until the paid period ends.
func (s *PaymentService) Cancel(userID uint) (*model.UserSubscription, error) {
	sub, err := s.SubscriptionRepo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	sub.Status = model.SubCancelled
	sub.AutoRenew = false
	if err := s.SubscriptionRepo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Status returns the user's subscription, or nil when they never subscribed.
// An expired subscription downgrades the user back to the free tier on read.
func (s *PaymentService) Status(userID uint) (*model.UserSubscription, error) {
	sub, err := s.SubscriptionRepo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !sub.IsActive() && sub.Status == model.SubActive {
		sub.Status = model.SubExpired
		if err := s.SubscriptionRepo.Update(sub); err != nil {
			return nil, err
		}
		user, err := s.UserRepo.FindByID(userID)
		if err != nil {
			return nil, err
		}
		user.SubscriptionTier = model.TierFree
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func (s *PaymentService) History(userID uint, page, limit int) ([]model.Payment, int64, error) {
	return s.PaymentRepo.ListByUser(userID, page, limit)
}
