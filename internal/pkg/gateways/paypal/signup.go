package paypal

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ticketfox/ticketfox/internal/pkg/env"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

const (
	signupHashKey = "ticketfox_commerce_paypal_signup_hash"
	signupDataKey = "ticketfox_commerce_paypal_signup_data"

	// One onboarding attempt is valid for a day; after that the hash and
	// the referral links expire together.
	signupTTL = 24 * time.Hour

	signupHashLength = 45
)

// TrackingIDProvider yields the id WhoDat uses to correlate the signup with
// this installation.
type TrackingIDProvider interface {
	GenerateUniqueTrackingID() string
}

// Signup drives the seller onboarding handshake against WhoDat.
type Signup struct {
	Onboarder SellerOnboarder
	Store     contracts.TransientStore
	Merchant  *Merchant
	Tracking  TrackingIDProvider
}

func NewSignup(onboarder SellerOnboarder, store contracts.TransientStore, merchant *Merchant, tracking TrackingIDProvider) *Signup {
	return &Signup{Onboarder: onboarder, Store: store, Merchant: merchant, Tracking: tracking}
}

// GenerateUniqueSignupHash builds a fresh hash from the site nonce secrets
// and a unique component, shuffled and cut to a fixed length.
func (s *Signup) GenerateUniqueSignupHash() string {
	nonceKey := md5.Sum([]byte(env.GetEnv("NONCE_KEY", "ticketfox-nonce-key")))
	nonceSalt := md5.Sum([]byte(env.GetEnv("NONCE_SALT", "ticketfox-nonce-salt")))
	unique := md5.Sum([]byte(uuid.NewString()))

	pool := []byte(hex.EncodeToString(nonceKey[:]) + hex.EncodeToString(nonceSalt[:]) + hex.EncodeToString(unique[:]))
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return string(pool[:signupHashLength])
}

// SignupHash returns the hash of the current onboarding attempt, creating
// and caching one when none is live.
func (s *Signup) SignupHash() (string, error) {
	var hash string
	found, err := s.Store.GetJSON(signupHashKey, &hash)
	if err != nil {
		return "", fmt.Errorf("failed to read signup hash: %w", err)
	}
	if found && hash != "" {
		return hash, nil
	}

	hash = s.GenerateUniqueSignupHash()
	if err := s.Store.SetJSON(signupHashKey, hash, signupTTL); err != nil {
		return "", fmt.Errorf("failed to cache signup hash: %w", err)
	}
	return hash, nil
}

// DeleteSignupHash drops the current attempt's hash so the next one starts
// clean.
func (s *Signup) DeleteSignupHash() error {
	return s.Store.Delete(signupHashKey)
}

// DeleteSignupData drops the cached referral links.
func (s *Signup) DeleteSignupData() error {
	return s.Store.Delete(signupDataKey)
}

// SignupData returns the cached referral payload of the current attempt.
func (s *Signup) SignupData() (*SignupData, bool, error) {
	var data SignupData
	found, err := s.Store.GetJSON(signupDataKey, &data)
	if err != nil || !found {
		return nil, false, err
	}
	return &data, true, nil
}

// ReferralDataLink is the endpoint the merchant status check reads the
// referral from once the seller finished signing up.
func (s *Signup) ReferralDataLink() (string, error) {
	data, found, err := s.SignupData()
	if err != nil {
		return "", err
	}
	if !found || len(data.Links) < 1 {
		return "", fmt.Errorf("no signup attempt in progress")
	}
	return data.Links[0].Href, nil
}

// GenerateURL returns the action URL the seller's browser is sent to.
// Cached links are reused per attempt unless force starts the handshake
// over with a fresh hash.
func (s *Signup) GenerateURL(ctx context.Context, country string, force bool) (string, error) {
	if !force {
		if data, found, err := s.SignupData(); err != nil {
			return "", err
		} else if found && len(data.Links) > 1 {
			return data.Links[1].Href, nil
		}
	} else {
		if err := s.DeleteSignupHash(); err != nil {
			return "", err
		}
		if err := s.DeleteSignupData(); err != nil {
			return "", err
		}
	}

	hash, err := s.SignupHash()
	if err != nil {
		return "", err
	}

	data, err := s.Onboarder.Signup(ctx, hash, s.Tracking.GenerateUniqueTrackingID(), country, s.Merchant.Mode())
	if err != nil {
		return "", err
	}

	if err := s.Store.SetJSON(signupDataKey, data, signupTTL); err != nil {
		return "", fmt.Errorf("failed to cache signup data: %w", err)
	}
	return data.Links[1].Href, nil
}
