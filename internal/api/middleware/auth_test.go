package middleware_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mento-labs/airdrop-allocator/internal/api/middleware"
)

func TestAuthenticate(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-one", "key-two"}}

	tests := []struct {
		name       string
		authHeader string
		cfg        middleware.AuthConfig
		success    bool
	}{
		{
			name:       "valid api key",
			authHeader: "ApiKey key-one",
			cfg:        cfg,
			success:    true,
		},
		{
			name:       "second configured key",
			authHeader: "apikey key-two",
			cfg:        cfg,
			success:    true,
		},
		{
			name:       "unknown key",
			authHeader: "ApiKey nope",
			cfg:        cfg,
		},
		{
			name:       "missing header",
			authHeader: "",
			cfg:        cfg,
		},
		{
			name:       "malformed header",
			authHeader: "ApiKeykey-one",
			cfg:        cfg,
		},
		{
			name:       "unsupported auth type",
			authHeader: "Bearer some-token",
			cfg:        cfg,
		},
		{
			name:       "no keys configured",
			authHeader: "ApiKey key-one",
			cfg:        middleware.AuthConfig{},
		},
		{
			name:       "empty key entries are ignored",
			authHeader: "ApiKey ",
			cfg:        middleware.AuthConfig{APIKeys: []string{""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := middleware.Authenticate(tt.authHeader, tt.cfg)

			assert.Equal(t, tt.success, result.Success)
			if !tt.success {
				assert.Error(t, result.Error)
			}
		})
	}
}
