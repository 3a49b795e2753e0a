// Package account holds the OVH account operations: greeting the account
// owner and registering a consumer key for the zone endpoints.
package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/ovh/go-ovh/ovh"

	"github.com/tempusbreve/zone-helper/internal/dns"
)

var ErrNotValidated = errors.New("consumer key not validated")

// Credential states reported by /auth/currentCredential.
const (
	StateValidated         = "validated"
	StatePendingValidation = "pendingValidation"
	StateExpired           = "expired"
	StateRefused           = "refused"
)

type Account struct {
	api *ovh.Client
	log logr.Logger
}

func WithLogger(log logr.Logger) func(*Account) {
	return func(a *Account) { a.log = log }
}

func New(api *ovh.Client, options ...func(*Account)) *Account {
	a := &Account{api: api, log: logr.Discard()}

	for _, fn := range options {
		fn(a)
	}

	return a
}

type me struct {
	FirstName string `json:"firstname"`
	Name      string `json:"name"`
	NicHandle string `json:"nichandle"`
}

// Greetings returns the first name of the account owner.
func (a *Account) Greetings(ctx context.Context) (string, error) {
	var res me
	if err := a.api.GetWithContext(ctx, "/me", &res); err != nil {
		return "", fmt.Errorf("reading account: %w", err)
	}

	a.log.V(1).Info("account found", "nichandle", res.NicHandle)
	return res.FirstName, nil
}

// Validation is what the user needs to finish a registration: the page where
// the key is granted and the key itself, to be stored in the configuration.
type Validation struct {
	ValidationURL string `json:"validationUrl" yaml:"validationUrl"`
	ConsumerKey   string `json:"consumerKey" yaml:"consumerKey"`
	State         string `json:"state" yaml:"state"`
}

// Register asks for a new consumer key with the rules needed by the account
// and zone operations. It returns as soon as the key is issued; the key is
// usable once the user has visited ValidationURL. An empty redirect leaves
// the redirection to OVH.
func (a *Account) Register(ctx context.Context, redirect string) (Validation, error) {
	var ck *ovh.CkRequest
	if redirect == "" {
		ck = a.api.NewCkRequest()
	} else {
		ck = a.api.NewCkRequestWithRedirection(redirect)
	}

	ck.AddRule(http.MethodGet, "/me")
	dns.ZoneAccessRules(ck)

	a.log.V(1).Info("requesting consumer key", "rules", len(ck.AccessRules))
	var state ovh.CkValidationState
	if err := a.api.PostUnAuthWithContext(ctx, "/auth/credential", ck, &state); err != nil {
		return Validation{}, fmt.Errorf("requesting consumer key: %w", err)
	}

	return Validation{
		ValidationURL: state.ValidationURL,
		ConsumerKey:   state.ConsumerKey,
		State:         state.State,
	}, nil
}

type Credential struct {
	ID            int64  `json:"credentialId" yaml:"credentialId"`
	ApplicationID int64  `json:"applicationId" yaml:"applicationId"`
	Status        string `json:"status" yaml:"status"`
	Creation      string `json:"creation,omitempty" yaml:"creation,omitempty"`
	Expiration    string `json:"expiration,omitempty" yaml:"expiration,omitempty"`
}

// Verify reports the state of the configured consumer key. A key that is not
// validated yet is returned along with ErrNotValidated.
func (a *Account) Verify(ctx context.Context) (Credential, error) {
	var res Credential
	if err := a.api.GetWithContext(ctx, "/auth/currentCredential", &res); err != nil {
		return res, fmt.Errorf("reading current credential: %w", err)
	}

	if res.Status != StateValidated {
		return res, fmt.Errorf("%w: status is %s", ErrNotValidated, res.Status)
	}

	return res, nil
}
