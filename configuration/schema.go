package configuration

import "time"

// Config is the validated service configuration.
type Config struct {
	// Name identifies the service in logs and health reports.
	Name string `mapstructure:"name" json:"name" yaml:"name" validate:"required" jsonschema:"minLength=1"`

	// Environment is informational; the runtime mode comes from NODE_ENV.
	Environment string `mapstructure:"environment" json:"environment,omitempty" yaml:"environment,omitempty" validate:"omitempty,oneof=development test staging production" jsonschema:"enum=development,enum=test,enum=staging,enum=production"`

	Core CoreConfig `mapstructure:"core" json:"core" yaml:"core"`

	// Env is copied into the process environment by [ApplyEnv].
	Env map[string]string `mapstructure:"env" json:"env,omitempty" yaml:"env,omitempty"`

	// Extra holds unknown top-level keys. Strict validation rejects them.
	Extra map[string]any `mapstructure:",remain" json:"-" yaml:"-"`

	// NodeEnv is the NODE_ENV the configuration was assembled for.
	NodeEnv string `mapstructure:"-" json:"-" yaml:"-"`
}

// IsProduction reports whether the configuration was assembled for
// NODE_ENV=production.
func (c *Config) IsProduction() bool {
	return c.NodeEnv == Production
}

// CoreConfig groups the settings consumed by the service runtime.
type CoreConfig struct {
	Host string `mapstructure:"host" json:"host" yaml:"host"`
	Port int    `mapstructure:"port" json:"port" yaml:"port" validate:"min=0,max=65535" jsonschema:"minimum=0,maximum=65535"`

	Cloud      CloudConfig      `mapstructure:"cloud" json:"cloud" yaml:"cloud"`
	Cors       CorsConfig       `mapstructure:"cors" json:"cors" yaml:"cors"`
	Helmet     HelmetConfig     `mapstructure:"helmet" json:"helmet" yaml:"helmet"`
	BodyParser BodyParserConfig `mapstructure:"bodyParser" json:"bodyParser" yaml:"bodyParser"`
	HTTPS      HTTPSConfig      `mapstructure:"https" json:"https" yaml:"https"`
	Auth       *AuthConfig      `mapstructure:"auth" json:"auth,omitempty" yaml:"auth,omitempty"`
	Health     HealthConfig     `mapstructure:"health" json:"health" yaml:"health"`
	Metrics    MetricsConfig    `mapstructure:"metrics" json:"metrics" yaml:"metrics"`
	Logger     LoggerConfig     `mapstructure:"logger" json:"logger" yaml:"logger"`
	Shutdown   ShutdownConfig   `mapstructure:"shutdown" json:"shutdown" yaml:"shutdown"`
}

type CloudConfig struct {
	Cluster     string `mapstructure:"cluster" json:"cluster" yaml:"cluster"`
	Environment string `mapstructure:"environment" json:"environment" yaml:"environment"`
	Region      string `mapstructure:"region" json:"region" yaml:"region"`
}

// CorsConfig mirrors the CORS middleware options. Nil fields are left to the
// middleware defaults.
type CorsConfig struct {
	Enabled              bool     `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Origins              []string `mapstructure:"origins" json:"origins,omitempty" yaml:"origins,omitempty" validate:"omitempty,dive,url"`
	Methods              []string `mapstructure:"methods" json:"methods,omitempty" yaml:"methods,omitempty"`
	RequestHeaders       []string `mapstructure:"requestHeaders" json:"requestHeaders,omitempty" yaml:"requestHeaders,omitempty"`
	ResponseHeaders      []string `mapstructure:"responseHeaders" json:"responseHeaders,omitempty" yaml:"responseHeaders,omitempty"`
	SupportsCredentials  *bool    `mapstructure:"supportsCredentials" json:"supportsCredentials,omitempty" yaml:"supportsCredentials,omitempty"`
	MaxAge               *int     `mapstructure:"maxAge" json:"maxAge,omitempty" yaml:"maxAge,omitempty" validate:"omitempty,gt=0"`
	EndPreflightRequests *bool    `mapstructure:"endPreflightRequests" json:"endPreflightRequests,omitempty" yaml:"endPreflightRequests,omitempty"`
}

type HelmetConfig struct {
	Enabled               bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	ContentSecurityPolicy string `mapstructure:"contentSecurityPolicy" json:"contentSecurityPolicy,omitempty" yaml:"contentSecurityPolicy,omitempty"`
	Frameguard            bool   `mapstructure:"frameguard" json:"frameguard" yaml:"frameguard"`
	NoSniff               bool   `mapstructure:"noSniff" json:"noSniff" yaml:"noSniff"`
	XSSFilter             bool   `mapstructure:"xssFilter" json:"xssFilter" yaml:"xssFilter"`
	HSTS                  bool   `mapstructure:"hsts" json:"hsts" yaml:"hsts"`
	HSTSMaxAge            int64  `mapstructure:"hstsMaxAge" json:"hstsMaxAge" yaml:"hstsMaxAge" validate:"gte=0"`
	ReferrerPolicy        string `mapstructure:"referrerPolicy" json:"referrerPolicy,omitempty" yaml:"referrerPolicy,omitempty"`
}

type BodyParserConfig struct {
	JSON       BodyLimit         `mapstructure:"json" json:"json" yaml:"json"`
	URLEncoded BodyLimit         `mapstructure:"urlencoded" json:"urlencoded" yaml:"urlencoded"`
	Raw        OptionalBodyLimit `mapstructure:"raw" json:"raw" yaml:"raw"`
	Text       OptionalBodyLimit `mapstructure:"text" json:"text" yaml:"text"`
}

// BodyLimit is a human readable size such as "10mb".
type BodyLimit struct {
	Limit string `mapstructure:"limit" json:"limit" yaml:"limit" validate:"required,bytesize"`
}

type OptionalBodyLimit struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Limit   string `mapstructure:"limit" json:"limit" yaml:"limit" validate:"required,bytesize"`
}

type HTTPSConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`

	// Options carries TLS settings; certFile and keyFile are required when
	// Enabled is set.
	Options map[string]any `mapstructure:"options" json:"options" yaml:"options"`
}

// AuthConfig declares named strategies and the path patterns they protect.
type AuthConfig struct {
	Strategies map[string]AuthStrategy `mapstructure:"strategies" json:"strategies" yaml:"strategies" validate:"dive"`
	Paths      []AuthPath              `mapstructure:"paths" json:"paths" yaml:"paths" validate:"dive"`

	// IgnorePaths defaults to /health, /ping and /metrics when unset.
	IgnorePaths []string `mapstructure:"ignorePaths" json:"ignorePaths,omitempty" yaml:"ignorePaths,omitempty"`
}

type AuthStrategy struct {
	Provider string         `mapstructure:"provider" json:"provider" yaml:"provider" validate:"required"`
	Config   map[string]any `mapstructure:"config" json:"config,omitempty" yaml:"config,omitempty"`
}

type AuthPath struct {
	// Path is a literal prefix or a pattern ending in "*".
	Path     string `mapstructure:"path" json:"path" yaml:"path" validate:"required"`
	Strategy string `mapstructure:"strategy" json:"strategy" yaml:"strategy" validate:"required"`
}

type HealthConfig struct {
	Enabled bool          `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Path    string        `mapstructure:"path" json:"path" yaml:"path" validate:"required,startswith=/"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" validate:"gt=0"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" json:"path" yaml:"path" validate:"required,startswith=/"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" json:"format" yaml:"format" validate:"oneof=json pretty" jsonschema:"enum=json,enum=pretty"`
}

type ShutdownConfig struct {
	Signals []string `mapstructure:"signals" json:"signals" yaml:"signals" validate:"omitempty,dive,oneof=SIGTERM SIGINT SIGHUP SIGQUIT SIGUSR1 SIGUSR2"`

	// Timeout bounds the connection drain; zero waits for every connection.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" validate:"gte=0"`
}

// DefaultIgnorePaths are never authenticated unless IgnorePaths is set.
var DefaultIgnorePaths = []string{"/health", "/ping", "/metrics"}

// EffectiveIgnorePaths returns the configured ignore list or the defaults.
func (a *AuthConfig) EffectiveIgnorePaths() []string {
	if a == nil || a.IgnorePaths == nil {
		return DefaultIgnorePaths
	}

	return a.IgnorePaths
}

// Addr returns the listen address in host:port form.
func (c CoreConfig) Addr() string {
	return joinHostPort(c.Host, c.Port)
}
