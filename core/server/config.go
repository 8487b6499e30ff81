package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB is the maximum accepted request body size in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"512"`
}

// BodyLimitBytes returns the request body limit in bytes, falling back to 512 MB.
func (c Config) BodyLimitBytes() int {
	if c.BodyLimitMB <= 0 {
		return 512 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}
