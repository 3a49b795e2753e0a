package hostaddr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newIMDSServer(t *testing.T, metadata map[string]string) *IMDSClient {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/token") {
			if r.Method != http.MethodPut {
				t.Errorf("Expected PUT for token request, got %s", r.Method)
			}
			if r.Header.Get("X-aws-ec2-metadata-token-ttl-seconds") != "21600" {
				t.Errorf("Expected TTL header to be 21600")
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("test-token"))
			return
		}

		if r.Header.Get("X-aws-ec2-metadata-token") != "test-token" {
			t.Errorf("Expected token header to be 'test-token'")
		}

		value, ok := metadata[strings.TrimPrefix(r.URL.Path, "/meta-data/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(value))
	}))
	t.Cleanup(server.Close)

	originalTokenURL := TokenURL
	originalMetadataURL := MetadataURL
	TokenURL = server.URL + "/token"
	MetadataURL = server.URL + "/meta-data"
	t.Cleanup(func() {
		TokenURL = originalTokenURL
		MetadataURL = originalMetadataURL
	})

	client := NewIMDSClient()
	client.httpClient = server.Client()
	return client
}

func TestIMDSClient_GetToken(t *testing.T) {
	client := newIMDSServer(t, nil)

	if err := client.getToken(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if client.token != "test-token" {
		t.Errorf("Expected token 'test-token', got %s", client.token)
	}

	if client.tokenExp.Before(time.Now()) {
		t.Errorf("Token expiration should be in the future")
	}
}

func TestIMDSClient_Addresses(t *testing.T) {
	client := newIMDSServer(t, map[string]string{
		"public-ipv4": "203.0.113.7",
		"ipv6":        "2001:db8::7\n2001:db8::8\n",
	})

	addrs, err := client.Addresses(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if addrs.IPv4 != "203.0.113.7" {
		t.Errorf("Expected IPv4 '203.0.113.7', got %s", addrs.IPv4)
	}
	if addrs.IPv6 != "2001:db8::7" {
		t.Errorf("Expected IPv6 '2001:db8::7', got %s", addrs.IPv6)
	}
}

func TestIMDSClient_AddressesIPv4Only(t *testing.T) {
	client := newIMDSServer(t, map[string]string{"public-ipv4": "203.0.113.7"})

	addrs, err := client.Addresses(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if addrs.IPv4 != "203.0.113.7" || addrs.IPv6 != "" {
		t.Errorf("Expected IPv4 only, got %s", addrs)
	}
}

func TestIMDSClient_AddressesNone(t *testing.T) {
	client := newIMDSServer(t, map[string]string{})

	if _, err := client.Addresses(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
