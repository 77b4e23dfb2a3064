package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrEmptyPhone = errors.New("phone number is empty")

// PhoneLookup resolves a raw phone number to its formatted form
type PhoneLookup interface {
	Lookup(ctx context.Context, phone string) (string, error)
}

// PhoneCache stores formatted numbers from successful lookups
type PhoneCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

// PhoneVerification is the result of a successful lookup
type PhoneVerification struct {
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted"`
}

// PhoneService verifies phone numbers against an external lookup
type PhoneService struct {
	lookup PhoneLookup
	cache  PhoneCache
	ttl    time.Duration
}

// NewPhoneService creates a new phone service. cache may be nil.
func NewPhoneService(lookup PhoneLookup, cache PhoneCache, ttl time.Duration) *PhoneService {
	return &PhoneService{
		lookup: lookup,
		cache:  cache,
		ttl:    ttl,
	}
}

// Verify returns the formatted number or a *LookupFailure. Only successes are cached.
func (s *PhoneService) Verify(ctx context.Context, phone string) (*PhoneVerification, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, &LookupFailure{Phone: phone, Err: ErrEmptyPhone}
	}

	if s.cache != nil {
		if formatted, err := s.cache.Get(ctx, phone); err == nil && formatted != "" {
			log.Debug().Str("phone", phone).Msg("Phone lookup cache hit")
			return &PhoneVerification{Valid: true, Formatted: formatted}, nil
		}
	}

	formatted, err := s.lookup.Lookup(ctx, phone)
	if err != nil {
		log.Warn().Err(err).Str("phone", phone).Msg("Phone lookup failed")
		return nil, &LookupFailure{Phone: phone, Err: err}
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, phone, formatted, s.ttl); err != nil {
			log.Warn().Err(err).Str("phone", phone).Msg("Failed to cache phone lookup")
		}
	}

	return &PhoneVerification{Valid: true, Formatted: formatted}, nil
}
