package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ovh/go-ovh/ovh"
)

func newTestAccount(t *testing.T, consumerKey string, handler http.HandlerFunc) *Account {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/time" {
			fmt.Fprintf(w, "%d", time.Now().Unix())
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	api, err := ovh.NewClient(server.URL, "app-key", "app-secret", consumerKey)
	if err != nil {
		t.Fatalf("Expected no error creating client, got %v", err)
	}

	return New(api)
}

func TestGreetings(t *testing.T) {
	a := newTestAccount(t, "consumer-key", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/me" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"firstname":"Ada","name":"Lovelace","nichandle":"la1234-ovh"}`))
	})

	name, err := a.Greetings(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if name != "Ada" {
		t.Errorf("Expected 'Ada', got %q", name)
	}
}

func TestRegister(t *testing.T) {
	var got struct {
		AccessRules []ovh.AccessRule `json:"accessRules"`
		Redirection string           `json:"redirection"`
	}

	a := newTestAccount(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/credential" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Expected JSON body, got %v", err)
		}
		w.Write([]byte(`{"validationUrl":"https://eu.api.ovh.com/auth/?credentialToken=abc","consumerKey":"new-ck","state":"pendingValidation"}`))
	})

	v, err := a.Register(context.Background(), "https://example.com/done")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := Validation{
		ValidationURL: "https://eu.api.ovh.com/auth/?credentialToken=abc",
		ConsumerKey:   "new-ck",
		State:         StatePendingValidation,
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Validation mismatch (-want +got):\n%s", diff)
	}

	if got.Redirection != "https://example.com/done" {
		t.Errorf("Expected redirection to be sent, got %q", got.Redirection)
	}

	wantRules := []ovh.AccessRule{
		{Method: "GET", Path: "/me"},
		{Method: "GET", Path: "/domain/zone/*/record"},
		{Method: "POST", Path: "/domain/zone/*/record"},
		{Method: "GET", Path: "/domain/zone/*/record/*"},
		{Method: "DELETE", Path: "/domain/zone/*/record/*"},
		{Method: "POST", Path: "/domain/zone/*/refresh"},
	}
	if diff := cmp.Diff(wantRules, got.AccessRules); diff != "" {
		t.Errorf("Access rules mismatch (-want +got):\n%s", diff)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		status  string
		wantErr error
	}{
		{StateValidated, nil},
		{StatePendingValidation, ErrNotValidated},
		{StateExpired, ErrNotValidated},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			a := newTestAccount(t, "consumer-key", func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/currentCredential" {
					t.Errorf("Unexpected path %s", r.URL.Path)
				}
				fmt.Fprintf(w, `{"credentialId":42,"applicationId":7,"status":%q}`, tt.status)
			})

			cred, err := a.Verify(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if cred.Status != tt.status || cred.ID != 42 {
				t.Errorf("Unexpected credential %+v", cred)
			}
		})
	}
}

func TestGreetingsFailure(t *testing.T) {
	a := newTestAccount(t, "consumer-key", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"This call has not been granted"}`))
	})

	if _, err := a.Greetings(context.Background()); err == nil {
		t.Error("Expected an error for a forbidden call")
	}
}

func TestRegisterCanceled(t *testing.T) {
	var calls int
	a := newTestAccount(t, "", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"validationUrl":"https://example.com","consumerKey":"ck","state":"pendingValidation"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Register(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected no request to reach the server, got %d", calls)
	}
}
