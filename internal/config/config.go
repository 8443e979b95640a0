// Package config loads and validates the Jissue configuration file.
//
// Configuration lives at ~/.jissue/config.json and carries the Jira base
// URL, exactly one credential shape, an optional proxy, and the default
// project key. A missing or invalid file is a setup error: the caller is
// expected to print the remediation text and exit before any network
// activity happens.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Dir is the per-user configuration directory name under $HOME.
const Dir = ".jissue"

// FileName is the configuration file name inside Dir.
const FileName = "config.json"

// ErrNotFound reports a missing configuration file. Callers match it
// with errors.Is to print setup guidance instead of a bare failure.
var ErrNotFound = errors.New("configuration file not found")

// AuthMethod identifies which credential shape the config carries.
type AuthMethod int

const (
	// AuthToken is personal-access-token auth (Jira Data Center).
	AuthToken AuthMethod = iota
	// AuthCloud is email + API token basic auth (Jira Cloud).
	AuthCloud
	// AuthBasic is username + password basic auth (Jira Data Center).
	AuthBasic
)

// Config holds Jira connection settings.
type Config struct {
	JiraURL        string `mapstructure:"jira_url"`
	DefaultProject string `mapstructure:"default_project"`
	Proxy          string `mapstructure:"proxy"`

	// Credential shapes — exactly one must be complete.
	Token    string `mapstructure:"token"`
	Email    string `mapstructure:"email"`
	APIToken string `mapstructure:"api_token"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ExampleCloud is the example configuration shape for Jira Cloud,
// shown whenever the config file is missing or invalid.
const ExampleCloud = `{
  "jira_url": "https://your-domain.atlassian.net",
  "email": "your-email@example.com",
  "api_token": "your-api-token",
  "default_project": "PROJ"
}`

// ExampleDataCenter is the example configuration shape for Jira Data Center.
const ExampleDataCenter = `{
  "jira_url": "https://jira.your-company.com",
  "username": "your-username",
  "password": "your-password-or-token",
  "default_project": "PROJ"
}`

// DefaultPath returns the default config file path (~/.jissue/config.json).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(Dir, FileName)
	}
	return filepath.Join(home, Dir, FileName)
}

// TemplatesDir returns the user template override directory
// (~/.jissue/templates).
func TemplatesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(Dir, "templates")
	}
	return filepath.Join(home, Dir, "templates")
}

// Load reads the configuration from the JSON file and applies env var
// overrides. configPath may be empty to use the default path. The
// returned config is validated: a missing file or an ambiguous
// credential shape is an error carrying remediation guidance.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	// Env var overrides
	v.BindEnv("jira_url", "JISSUE_URL")
	v.BindEnv("default_project", "JISSUE_PROJECT")
	v.BindEnv("token", "JISSUE_TOKEN")
	v.BindEnv("email", "JISSUE_EMAIL")
	v.BindEnv("api_token", "JISSUE_API_TOKEN")
	v.BindEnv("username", "JISSUE_USERNAME")
	v.BindEnv("password", "JISSUE_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf(
				"%w: %s\n\nPlease create %s with the following structure:\n\nFor Jira Cloud:\n%s\n\nFor Jira Data Center:\n%s",
				ErrNotFound, configPath, configPath, ExampleCloud, ExampleDataCenter,
			)
		}
		return nil, fmt.Errorf("reading config %s: %w", configPath, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the base URL is present and that exactly one
// credential shape is configured.
func (c *Config) Validate() error {
	if c.JiraURL == "" {
		return fmt.Errorf("invalid config: jira_url is required")
	}
	_, err := c.AuthMethod()
	return err
}

// AuthMethod determines which credential shape the config carries.
// Exactly one complete shape must be present: token (Data Center PAT),
// email + api_token (Cloud), or username + password (Data Center).
func (c *Config) AuthMethod() (AuthMethod, error) {
	var methods []AuthMethod
	var names []string

	if c.Token != "" {
		methods = append(methods, AuthToken)
		names = append(names, "token")
	}
	if c.Email != "" && c.APIToken != "" {
		methods = append(methods, AuthCloud)
		names = append(names, "email + api_token")
	}
	if c.Username != "" && c.Password != "" {
		methods = append(methods, AuthBasic)
		names = append(names, "username + password")
	}

	switch len(methods) {
	case 0:
		return 0, fmt.Errorf(
			"invalid config: must have exactly one of 'token' (Data Center token auth), "+
				"'email' + 'api_token' (Cloud), or 'username' + 'password' (Data Center)",
		)
	case 1:
		return methods[0], nil
	default:
		return 0, fmt.Errorf("invalid config: ambiguous credentials, found %v — keep exactly one", names)
	}
}
