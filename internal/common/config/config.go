// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Email   EmailConfig   `mapstructure:"email"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EmailConfig holds settings for the email dispatch pipeline.
//
// Mode selects the dispatcher: "demo" fabricates message ids and logs the
// would-be sends, "ses" delivers through AWS SES. Missing SES credentials in
// ses mode fail each request with a generic server error; there is no silent
// fallback to demo.
type EmailConfig struct {
	Mode            string `mapstructure:"mode"`
	AWSRegion       string `mapstructure:"aws_region"`
	SenderAddress   string `mapstructure:"sender_address"`
	SenderName      string `mapstructure:"sender_name"`
	CompanyInbox    string `mapstructure:"company_inbox"`
	DispatchTimeout int    `mapstructure:"dispatch_timeout"` // milliseconds
}

// Sender returns the From header value, with the display name when configured.
func (e EmailConfig) Sender() string {
	if e.SenderName == "" {
		return e.SenderAddress
	}
	return fmt.Sprintf("%s <%s>", e.SenderName, e.SenderAddress)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
