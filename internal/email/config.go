package email

import "fmt"

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.Port)
	}
	if c.From == "" {
		return fmt.Errorf("from address is required")
	}
	return nil
}
