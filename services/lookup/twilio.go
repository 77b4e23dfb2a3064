// Package lookup resolves phone numbers against the Twilio Lookups v1 API
package lookup

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	lookups "github.com/twilio/twilio-go/rest/lookups/v1"
)

// ErrNoPhoneNumber is returned when Twilio answers without a formatted number
var ErrNoPhoneNumber = errors.New("lookup returned no phone number")

// Config holds the Twilio account credentials
type Config struct {
	AccountSID string
	AuthToken  string
}

// TwilioLookup validates and formats phone numbers
type TwilioLookup struct {
	client *twilio.RestClient
}

// NewTwilioLookup creates the REST client once; it is safe for concurrent use
func NewTwilioLookup(config Config) *TwilioLookup {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AccountSID,
		Password: config.AuthToken,
	})
	return &TwilioLookup{client: client}
}

// Lookup returns the provider's formatted (E.164) form of phone.
// The Twilio SDK has no context support, so ctx is only checked up front.
func (l *TwilioLookup) Lookup(ctx context.Context, phone string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	resp, err := l.client.LookupsV1.FetchPhoneNumber(phone, &lookups.FetchPhoneNumberParams{})
	if err != nil {
		return "", err
	}
	if resp == nil || resp.PhoneNumber == nil || *resp.PhoneNumber == "" {
		return "", ErrNoPhoneNumber
	}
	return *resp.PhoneNumber, nil
}
