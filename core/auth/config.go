package auth

import (
	"time"

	"github.com/dmitrymomot/mailpush/pkg/jwt"
)

// Config holds credential settings.
type Config struct {
	Secret    string        `env:"JWT_SECRET,required"`
	Algorithm string        `env:"JWT_ALGORITHM" envDefault:"HS512"`
	TTL       time.Duration `env:"JWT_TTL" envDefault:"24h"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"mailpush"`
}

// NewService builds the token service shared by Verifier and Issuer.
func NewService(cfg Config, opts ...jwt.Option) (*jwt.Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	alg := jwt.Algorithm(cfg.Algorithm)
	if alg == "" {
		alg = jwt.HS512
	}
	return jwt.NewFromString(cfg.Secret, append([]jwt.Option{jwt.WithAlgorithm(alg)}, opts...)...)
}
