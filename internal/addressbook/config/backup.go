package config

import "time"

// BackupConfig описывает вызов внешней утилиты дампа.
type BackupConfig struct {
	Command string        `yaml:"command" env:"ADDRESSBOOK_BACKUP_COMMAND" env-default:"pg_dump"`
	Dir     string        `yaml:"dir" env:"ADDRESSBOOK_BACKUP_DIR" env-default:"backups"`
	Timeout time.Duration `yaml:"timeout" env:"ADDRESSBOOK_BACKUP_TIMEOUT" env-default:"2m"`
}

// S3Config описывает S3-совместимое хранилище для копий дампов.
// Пустой Bucket отключает выгрузку.
type S3Config struct {
	Bucket    string `yaml:"bucket" env:"ADDRESSBOOK_S3_BUCKET" env-default:""`
	Region    string `yaml:"region" env:"ADDRESSBOOK_S3_REGION" env-default:"us-east-1"`
	Endpoint  string `yaml:"endpoint" env:"ADDRESSBOOK_S3_ENDPOINT" env-default:""`
	AccessKey string `yaml:"access_key" env:"ADDRESSBOOK_S3_ACCESS_KEY" env-default:""`
	SecretKey string `yaml:"secret_key" env:"ADDRESSBOOK_S3_SECRET_KEY" env-default:""`
	Prefix    string `yaml:"prefix" env:"ADDRESSBOOK_S3_PREFIX" env-default:"backups/"`
}

// Enabled сообщает, настроена ли выгрузка в S3.
func (c *S3Config) Enabled() bool {
	return c.Bucket != ""
}
