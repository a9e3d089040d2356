package config

// Profile is the full client configuration for one API environment.
type Profile struct {
	Name            string            `yaml:"name"`                       // Required: profile identifier
	Description     string            `yaml:"description,omitempty"`      // Optional description
	BaseURL         string            `yaml:"base_url"`                   // Required API root URL
	Headers         map[string]string `yaml:"headers,omitempty"`          // Static headers for all requests
	TimeoutSeconds  int               `yaml:"timeout_seconds,omitempty"`  // HTTP timeout (default 30)
	Auth            *Auth             `yaml:"auth,omitempty"`             // Optional authentication
	IdempotencyKeys bool              `yaml:"idempotency_keys,omitempty"` // Auto idempotency keys on mutating requests
}

// Auth defines auth methods.
type Auth struct {
	Type   AuthType    `yaml:"type"`              // Required authentication type
	Bearer *BearerAuth `yaml:"bearer,omitempty"`  // Bearer token authentication
	Basic  *BasicAuth  `yaml:"basic,omitempty"`   // Basic authentication
	APIKey *APIKeyAuth `yaml:"api_key,omitempty"` // API key authentication
}

// AuthType defines the supported authentication types
type AuthType string

const (
	AuthTypeBearer AuthType = "bearer"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeAPIKey AuthType = "api_key"
)

// BearerAuth holds a static bearer token.
type BearerAuth struct {
	Token string `yaml:"token"`
}

// BasicAuth contains basic auth credentials
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// APIKeyAuth contains API key details
type APIKeyAuth struct {
	Header     string `yaml:"header,omitempty"`      // Header name
	QueryParam string `yaml:"query_param,omitempty"` // Query parameter name
	Value      string `yaml:"value"`                 // API key value
}
