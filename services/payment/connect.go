package payment

import (
	"fmt"
	"time"

	"mentormatch/models"
	"mentormatch/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/account"
	"github.com/stripe/stripe-go/v76/accountlink"
	"go.uber.org/zap"
)

// OnboardMentor creates the mentor's Stripe Express account on first call and
// returns a fresh hosted onboarding link.
func (s *DefaultPaymentService) OnboardMentor(profileID, refreshURL, returnURL string) (*OnboardResponse, error) {
	profile, err := s.ProfileRepo.GetByID(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil || !profile.IsMentor {
		return nil, fmt.Errorf("only mentors can onboard for payouts")
	}

	acct, err := s.PaymentRepo.GetAccountByUserID(profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment account: %w", err)
	}

	if acct == nil {
		userRec, err := s.UserRepo.GetByID(profile.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch user: %w", err)
		}
		if userRec == nil {
			return nil, fmt.Errorf("user not found")
		}

		params := &stripe.AccountParams{
			Type:  stripe.String(string(stripe.AccountTypeExpress)),
			Email: stripe.String(userRec.Email),
			Capabilities: &stripe.AccountCapabilitiesParams{
				CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
				Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
			},
		}
		created, err := account.New(params)
		if err != nil {
			utils.GetLogger().Error("failed to create Stripe account", zap.Error(err))
			return nil, fmt.Errorf("failed to create payout account: %w", err)
		}

		acct = &models.PaymentAccount{
			UserID:          profile.UserID,
			StripeAccountID: created.ID,
			CreatedAt:       time.Now(),
		}
		if err := s.PaymentRepo.UpsertAccount(acct); err != nil {
			return nil, fmt.Errorf("failed to save payment account: %w", err)
		}
	}

	link, err := accountlink.New(&stripe.AccountLinkParams{
		Account:    stripe.String(acct.StripeAccountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		utils.GetLogger().Error("failed to create onboarding link", zap.Error(err))
		return nil, fmt.Errorf("failed to create onboarding link: %w", err)
	}

	return &OnboardResponse{AccountID: acct.StripeAccountID, OnboardingURL: link.URL}, nil
}

// ConnectStatus fetches the live account state from Stripe and mirrors the
// flags locally.
func (s *DefaultPaymentService) ConnectStatus(profileID string) (*models.ConnectStatus, error) {
	profile, err := s.ProfileRepo.GetByID(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found")
	}

	acct, err := s.PaymentRepo.GetAccountByUserID(profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment account: %w", err)
	}
	if acct == nil {
		return nil, fmt.Errorf("no payout account; onboarding required")
	}

	remote, err := account.GetByID(acct.StripeAccountID, nil)
	if err != nil {
		utils.GetLogger().Error("failed to fetch Stripe account", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch account status: %w", err)
	}

	acct.ChargesEnabled = remote.ChargesEnabled
	acct.PayoutsEnabled = remote.PayoutsEnabled
	acct.DetailsSubmitted = remote.DetailsSubmitted
	if err := s.PaymentRepo.UpsertAccount(acct); err != nil {
		utils.GetLogger().Warn("failed to mirror account flags", zap.Error(err))
	}

	status := &models.ConnectStatus{
		AccountID:        remote.ID,
		IsActive:         remote.ChargesEnabled && remote.PayoutsEnabled,
		ChargesEnabled:   remote.ChargesEnabled,
		PayoutsEnabled:   remote.PayoutsEnabled,
		DetailsSubmitted: remote.DetailsSubmitted,
	}
	if remote.Requirements != nil {
		status.RequirementsPending = remote.Requirements.CurrentlyDue
	}
	return status, nil
}
