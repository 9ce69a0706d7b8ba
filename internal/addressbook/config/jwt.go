package config

import "time"

// JWTConfig содержит настройки токенов доступа и хэширования паролей.
type JWTConfig struct {
	SecretKey      string `yaml:"secret_key" env:"ADDRESSBOOK_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	AccessTokenTTL string `yaml:"access_token_ttl" env:"ADDRESSBOOK_JWT_ACCESS_TOKEN_TTL" env-default:"8h"`
	BCryptCost     int    `yaml:"bcrypt_cost" env:"ADDRESSBOOK_JWT_BCRYPT_COST" env-default:"10"`
}

// GetAccessTokenTTL возвращает время жизни токена доступа.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || duration <= 0 {
		return 8 * time.Hour
	}
	return duration
}
