package config

// BootstrapConfig задает начальные данные для пустой базы.
type BootstrapConfig struct {
	AdminUsername string `yaml:"admin_username" env:"ADDRESSBOOK_ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string `yaml:"admin_password" env:"ADDRESSBOOK_ADMIN_PASSWORD" env-default:"admin123"`
	AdminEmail    string `yaml:"admin_email" env:"ADDRESSBOOK_ADMIN_EMAIL" env-default:"admin@addressbook.com"`
	SeedSamples   bool   `yaml:"seed_samples" env:"ADDRESSBOOK_SEED_SAMPLES" env-default:"false"`
}
