// Package di provides factories that build application components from config.
package di

import (
	"job_backend/internal/app/config"
	jwtmw "job_backend/internal/platform/jwt"
	"job_backend/internal/platform/password"
)

// NewPasswordHasher returns a hasher for the configured scheme that still
// verifies digests of the other scheme.
func NewPasswordHasher(cfg *config.Config) *password.Context {
	bc := password.NewBcryptHasher(cfg.BcryptCost)
	ar := password.NewArgon2idHasher(password.DefaultArgon2idParams)
	if cfg.PasswordScheme == config.SchemeArgon2id {
		return password.NewContext(ar, bc)
	}
	return password.NewContext(bc, ar)
}

// NewTokenIssuer creates the access token issuer.
func NewTokenIssuer(cfg *config.Config, opts ...jwtmw.Option) (*jwtmw.Issuer, error) {
	return jwtmw.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTAlgorithm, cfg.JWTTTL, opts...)
}
