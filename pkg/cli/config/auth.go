package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Auth holds configuration for session token signing
type Auth struct {
	tokenSecret string
}

// Flags returns CLI flags for auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "HMAC secret for session token signing (required)",
			Sources:     cli.EnvVars("THEMIS_TOKEN_SECRET"),
			Destination: &a.tokenSecret,
		},
	}
}

// minSecretLength guards against trivially brute-forceable HMAC keys
const minSecretLength = 16

// Configure validates and returns the token secret
func (a *Auth) Configure() ([]byte, error) {
	if a.tokenSecret == "" {
		return nil, goerr.New("token-secret is required")
	}
	if len(a.tokenSecret) < minSecretLength {
		return nil, goerr.New("token-secret is too short",
			goerr.V("length", len(a.tokenSecret)),
			goerr.V("minimum", minSecretLength),
		)
	}
	return []byte(a.tokenSecret), nil
}
