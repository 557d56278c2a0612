package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func newTestGoogleServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(googleUserInfo{
			ID:            "g-42",
			Email:         "gina@example.com",
			VerifiedEmail: true,
			Name:          "Gina",
			Picture:       "https://example.com/g.png",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleOAuthService_ExchangeCode(t *testing.T) {
	srv := newTestGoogleServer(t)
	cfg := &config.Config{GoogleClientID: "client-1", GoogleClientSecret: "secret", GoogleRedirectURL: "http://localhost/cb"}
	svc := newGoogleOAuthService(cfg, oauth2.Endpoint{TokenURL: srv.URL + "/token", AuthURL: srv.URL + "/auth"}, srv.URL+"/userinfo", nil)

	ext, err := svc.ExchangeCode(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, &domain.ExternalIdentity{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "g-42",
		Email:          "gina@example.com",
		EmailVerified:  true,
		DisplayName:    "Gina",
		PhotoURL:       "https://example.com/g.png",
	}, ext)

	_, err = svc.ExchangeCode(context.Background(), "bad-code")
	assert.Error(t, err)
}

func TestGoogleOAuthService_LoginURLAndState(t *testing.T) {
	cfg := &config.Config{GoogleClientID: "client-1", GoogleRedirectURL: "http://localhost/cb"}
	svc := NewGoogleOAuthService(cfg)

	state, err := svc.GenerateStateString(context.Background())
	require.NoError(t, err)
	assert.Len(t, state, 32)

	url := svc.GetGoogleLoginURL(context.Background(), state)
	assert.True(t, strings.HasPrefix(url, "https://accounts.google.com/"))
	assert.Contains(t, url, "state="+state)
	assert.Contains(t, url, "client_id=client-1")
}

func TestGoogleOAuthService_VerifyIDToken(t *testing.T) {
	cfg := &config.Config{GoogleClientID: "client-1"}
	validate := func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "valid" || audience != "client-1" {
			return nil, errors.New("idtoken: invalid")
		}
		return &idtoken.Payload{
			Subject: "g-7",
			Claims: map[string]interface{}{
				"email":          "ana@example.com",
				"email_verified": true,
				"name":           "Ana",
			},
		}, nil
	}
	svc := newGoogleOAuthService(cfg, oauth2.Endpoint{}, "", validate)

	ext, err := svc.VerifyIDToken(context.Background(), "valid")
	require.NoError(t, err)
	assert.Equal(t, "g-7", ext.ProviderUserID)
	assert.Equal(t, "ana@example.com", ext.Email)
	assert.True(t, ext.EmailVerified)
	assert.Equal(t, "Ana", ext.DisplayName)
	assert.Empty(t, ext.PhotoURL)

	_, err = svc.VerifyIDToken(context.Background(), "forged")
	assert.Error(t, err)
}

func TestGoogleOAuthService_NotConfigured(t *testing.T) {
	svc := NewGoogleOAuthService(&config.Config{})

	_, err := svc.VerifyIDToken(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGoogleNotConfigured)
	_, err = svc.ExchangeCode(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGoogleNotConfigured)
}

func TestExternalIdentityFromPayload_MissingEmail(t *testing.T) {
	_, err := externalIdentityFromPayload(&idtoken.Payload{Subject: "g-1", Claims: map[string]interface{}{}})
	assert.Error(t, err)
}
