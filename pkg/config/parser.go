package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidationError reports one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the string representation of a validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks a parsed profile.
type Validator interface {
	Validate(profile *Profile) []ValidationError
}

// DefaultValueSetter fills in defaults on a parsed profile.
type DefaultValueSetter interface {
	SetDefaults(profile *Profile)
}

// VariableExpander expands variables in raw config bytes before parsing.
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands ${VAR} references with environment values.
func (e *EnvExpander) Expand(data []byte) []byte {
	return []byte(os.Expand(string(data), os.Getenv))
}

// Loader parses YAML profiles through expansion, defaults and validation.
type Loader struct {
	expander      VariableExpander
	defaultSetter DefaultValueSetter
	validators    []Validator
}

// NewLoader creates a Loader with the given components.
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		defaultSetter: defaultSetter,
		validators:    validators,
	}
}

// NewDefaultLoader wires the standard expander, defaults and validators.
func NewDefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&ProfileDefaults{},
		&RequiredFieldValidator{},
		&AuthValidator{},
	)
}

// Load reads a profile from a YAML file.
func (l *Loader) Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return l.Parse(data)
}

// Parse parses a yaml profile
func (l *Loader) Parse(data []byte) (*Profile, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&profile)
	}

	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(&profile)...)
	}
	if len(allErrors) > 0 {
		return nil, fmt.Errorf("validation errors: %v", allErrors)
	}

	return &profile, nil
}

// ProfileDefaults implements DefaultValueSetter for Profile
type ProfileDefaults struct{}

// SetDefaults sets default values for a Profile
func (d *ProfileDefaults) SetDefaults(profile *Profile) {
	if profile.TimeoutSeconds <= 0 {
		profile.TimeoutSeconds = 30
	}
}

// RequiredFieldValidator checks the fields every profile needs.
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(profile *Profile) []ValidationError {
	var errs []ValidationError

	if profile.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "is required"})
	}
	if profile.BaseURL == "" {
		errs = append(errs, ValidationError{Field: "base_url", Message: "is required"})
	}

	return errs
}

// AuthValidator handles authentication validation
type AuthValidator struct{}

// Validate checks that the authentication block is consistent.
func (v *AuthValidator) Validate(profile *Profile) []ValidationError {
	var errs []ValidationError

	if profile.Auth == nil {
		return errs
	}

	switch profile.Auth.Type {
	case AuthTypeBearer:
		if profile.Auth.Bearer == nil || profile.Auth.Bearer.Token == "" {
			errs = append(errs, ValidationError{Field: "auth.bearer.token", Message: "is required for bearer auth"})
		}
	case AuthTypeBasic:
		if profile.Auth.Basic == nil {
			errs = append(errs, ValidationError{Field: "auth.basic", Message: "is required for basic auth"})
		} else if profile.Auth.Basic.Username == "" {
			errs = append(errs, ValidationError{Field: "auth.basic.username", Message: "is required for basic auth"})
		}
	case AuthTypeAPIKey:
		if profile.Auth.APIKey == nil {
			errs = append(errs, ValidationError{Field: "auth.api_key", Message: "is required for api_key auth"})
		} else {
			if profile.Auth.APIKey.Value == "" {
				errs = append(errs, ValidationError{Field: "auth.api_key.value", Message: "is required for api_key auth"})
			}
			if profile.Auth.APIKey.Header == "" && profile.Auth.APIKey.QueryParam == "" {
				errs = append(errs, ValidationError{Field: "auth.api_key", Message: "either header or query_param must be specified"})
			}
		}
	default:
		errs = append(errs, ValidationError{Field: "auth.type", Message: fmt.Sprintf("unknown auth type: %s", profile.Auth.Type)})
	}

	return errs
}
