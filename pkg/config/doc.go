// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Each config type is parsed exactly once per process and cached, so the
// same struct can be requested from several places without re-reading the
// environment:
//
//	type FlashConfig struct {
//		Secrets string        `env:"FORM_FLASH_SECRETS,required"`
//		TTL     time.Duration `env:"FORM_FLASH_TTL" envDefault:"10m"`
//	}
//
//	var cfg FlashConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config
