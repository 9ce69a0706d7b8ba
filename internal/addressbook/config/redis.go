package config

import (
	"net"
	"strconv"
	"time"

	"addressbook/pkg/db/redis"
)

// RedisConfig представляет конфигурацию Redis для хранения отозванных сессий.
type RedisConfig struct {
	Host      string        `yaml:"host" env:"ADDRESSBOOK_REDIS_HOST" env-default:"localhost"`
	Port      int           `yaml:"port" env:"ADDRESSBOOK_REDIS_PORT" env-default:"6379"`
	Password  string        `yaml:"password" env:"ADDRESSBOOK_REDIS_PASSWORD" env-default:""`
	DB        int           `yaml:"db" env:"ADDRESSBOOK_REDIS_DB" env-default:"0"`
	PoolSize  int           `yaml:"pool_size" env:"ADDRESSBOOK_REDIS_POOL_SIZE" env-default:"10"`
	Timeout   time.Duration `yaml:"timeout" env:"ADDRESSBOOK_REDIS_TIMEOUT" env-default:"3s"`
	KeyPrefix string        `yaml:"key_prefix" env:"ADDRESSBOOK_REDIS_KEY_PREFIX" env-default:"addressbook:revoked:"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ClientConfig переводит настройки в конфигурацию общего клиента.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
