package config

import "fmt"

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDeleteBackend selects the delete backend
func WithDeleteBackend(name string) Option {
	return func(c *ServerConfig) error {
		c.DeleteBackend = name
		return nil
	}
}

// WithEndpoint sets the endpoint override for SDK backends
func WithEndpoint(endpoint string) Option {
	return func(c *ServerConfig) error {
		c.Endpoint = endpoint
		return nil
	}
}

// WithURLExpirySeconds sets how long signed URLs stay valid
func WithURLExpirySeconds(seconds int) Option {
	return func(c *ServerConfig) error {
		if seconds <= 0 {
			return fmt.Errorf("url expiry must be positive, got %d", seconds)
		}
		c.URLExpirySeconds = seconds
		return nil
	}
}

// WithKeyNamespace sets the top-level prefix of object keys
func WithKeyNamespace(namespace string) Option {
	return func(c *ServerConfig) error {
		c.KeyNamespace = namespace
		return nil
	}
}

// WithLog replaces the logging configuration
func WithLog(log LogConfig) Option {
	return func(c *ServerConfig) error {
		c.Log = log
		return nil
	}
}
