package contact

import "time"

type Config struct {
	SendTimeout time.Duration `env:"CONTACT_SEND_TIMEOUT" envDefault:"15s"`
	// FlashKey names the cookie carrying the notice across the redirect
	// after a plain form post.
	FlashKey string `env:"CONTACT_FLASH_KEY" envDefault:"contact_notice"`
}
