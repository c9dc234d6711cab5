package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	// Empty means the API is open.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxUploadMB is the maximum multipart upload size in megabytes.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"64"`
}
