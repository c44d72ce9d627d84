package semantria

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/kroma-labs/semantria-go/httpclient"
)

const (
	// DefaultHost is the production API endpoint.
	DefaultHost = "https://api.semantria.com"

	// DefaultAPIVersion is sent in the x-api-version header.
	DefaultAPIVersion = "4.2"

	// SDKVersion identifies this client in the x-app-name header.
	SDKVersion = "1.0.0"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Session holds credentials and preferences for talking to the API.
//
// A Session is immutable once built and safe for concurrent use.
type Session struct {
	format  Format
	appName string
	hooks   Hooks
	client  *httpclient.Client
	logger  zerolog.Logger
}

// sessionConfig is the validated input of New.
type sessionConfig struct {
	Key             string `validate:"required"`
	Secret          string `validate:"required"`
	Format          Format `validate:"oneof=json xml"`
	Host            string `validate:"required,url"`
	APIVersion      string `validate:"required"`
	ApplicationName string

	hooks       Hooks
	logger      zerolog.Logger
	httpOptions []httpclient.Option
}

// Option configures a Session.
type Option func(*sessionConfig)

// WithFormat selects the wire format. Default: FormatJSON.
func WithFormat(f Format) Option {
	return func(c *sessionConfig) {
		c.Format = f
	}
}

// WithApplicationName prefixes the x-app-name header with name.
func WithApplicationName(name string) Option {
	return func(c *sessionConfig) {
		c.ApplicationName = name
	}
}

// WithHooks installs pipeline hooks. Nil hook fields stay no-ops.
func WithHooks(h Hooks) Option {
	return func(c *sessionConfig) {
		c.hooks = h
	}
}

// WithHost overrides DefaultHost, e.g. to point at a test server.
func WithHost(host string) Option {
	return func(c *sessionConfig) {
		c.Host = strings.TrimSuffix(host, "/")
	}
}

// WithAPIVersion overrides DefaultAPIVersion.
func WithAPIVersion(v string) Option {
	return func(c *sessionConfig) {
		c.APIVersion = v
	}
}

// WithLogger sets the logger for pipeline events. Default: disabled.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithHTTPOptions passes options to the underlying httpclient.Client:
// timeouts, tracing and metrics providers, debug logging, rate limiting or
// a mock transport.
//
// Base URL and request signing are owned by the Session and cannot be
// overridden here.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(c *sessionConfig) {
		c.httpOptions = append(c.httpOptions, opts...)
	}
}

// New creates a Session for the consumer key and secret.
//
// It returns a *ConfigurationError when key or secret is empty, or when an
// option is invalid.
//
// Example:
//
//	session, err := semantria.New(key, secret,
//	    semantria.WithApplicationName("review-miner"),
//	    semantria.WithFormat(semantria.FormatXML),
//	)
func New(key, secret string, opts ...Option) (*Session, error) {
	cfg := sessionConfig{
		Key:        strings.TrimSpace(key),
		Secret:     strings.TrimSpace(secret),
		Format:     FormatJSON,
		Host:       DefaultHost,
		APIVersion: DefaultAPIVersion,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, configurationError(err)
	}

	app := appName{
		Application: cfg.ApplicationName,
		Runtime:     "Go",
		Version:     SDKVersion,
		Format:      cfg.Format,
	}
	sign := newSigner(cfg.Key, cfg.Secret)

	httpOpts := []httpclient.Option{
		httpclient.WithServiceName("semantria"),
		httpclient.WithHeader("x-app-name", app.String()),
		httpclient.WithHeader("x-api-version", cfg.APIVersion),
		httpclient.WithHeader("User-Agent", "semantria-go/"+SDKVersion),
		httpclient.WithHeader("Accept", cfg.Format.ContentType()),
	}
	httpOpts = append(httpOpts, cfg.httpOptions...)
	httpOpts = append(httpOpts,
		httpclient.WithBaseURL(cfg.Host+"/"+cfg.Format.String()),
		httpclient.WithSigner(sign.sign),
	)

	return &Session{
		format:  cfg.Format,
		appName: app.String(),
		hooks:   cfg.hooks.withDefaults(),
		client:  httpclient.New(httpOpts...),
		logger:  cfg.logger,
	}, nil
}

// Format returns the session's wire format.
func (s *Session) Format() Format {
	return s.format
}

// ApplicationName returns the value sent in the x-app-name header.
func (s *Session) ApplicationName() string {
	return s.appName
}

// configurationError converts the first validation failure into a
// *ConfigurationError.
func configurationError(err error) error {
	field, reason := describeInvalid(err)
	if field == "" {
		field = "session"
	}
	return &ConfigurationError{Field: field, Reason: reason}
}

// describeInvalid returns the lowercased field name and a readable reason
// for the first failure reported by the validator.
func describeInvalid(err error) (field, reason string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		reason = "must have at least " + fe.Param() + " entries"
	case "oneof":
		reason = "must be one of: " + fe.Param()
	case "url":
		reason = "must be an absolute URL"
	default:
		reason = "is invalid"
	}
	return strings.ToLower(fe.Field()), reason
}

// appName is the structured value of the x-app-name header:
//
//	[Application/]Runtime/Version/Format
type appName struct {
	Application string
	Runtime     string
	Version     string
	Format      Format
}

func (a appName) String() string {
	parts := make([]string, 0, 4)
	if a.Application != "" {
		parts = append(parts, a.Application)
	}
	parts = append(parts, a.Runtime, a.Version, a.Format.String())
	return strings.Join(parts, "/")
}
