// Package config loads the deployment configuration that replaces the
// process-wide directory and secret globals of earlier revisions. Every
// component receives its settings explicitly at construction.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FilenameField names one raw field used for output filename derivation plus
// the token substituted when the field is missing or blank.
type FilenameField struct {
	Name    string `yaml:"name"`
	Default string `yaml:"default"`
}

// Config carries every deployment setting. Zero values are filled in by
// Default / applyDefaults so a partial YAML file is enough.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string `yaml:"listen_addr"`

	// TemplatesDir holds the original uploaded templates.
	TemplatesDir string `yaml:"templates_dir"`
	// SanitizedDir receives derived sanitized template copies.
	SanitizedDir string `yaml:"sanitized_dir"`
	// OutputDir receives generated documents.
	OutputDir string `yaml:"output_dir"`

	// ContactsFile is the CSV-backed auxiliary record store.
	ContactsFile string `yaml:"contacts_file"`

	// FlashSecret signs the transient notice cookie. A random per-process
	// key is generated when unset.
	FlashSecret string `yaml:"flash_secret"`

	// FilenamePrefix is the fixed first segment of derived filenames.
	FilenamePrefix string `yaml:"filename_prefix"`
	// FilenameFields are the two raw fields a derived filename is built from.
	FilenameFields []FilenameField `yaml:"filename_fields"`

	// ExcludedPlaceholders maps reserved placeholders to the contact column
	// injected under them. These never appear on the manual-entry form.
	ExcludedPlaceholders map[string]string `yaml:"excluded_placeholders"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML file and fills in defaults for anything left unset.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = "templates"
	}
	if c.SanitizedDir == "" {
		c.SanitizedDir = "sanitized_templates"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.ContactsFile == "" {
		c.ContactsFile = "contacts.csv"
	}
	if c.FlashSecret == "" {
		// Notices must not be client-forgeable, so an unset secret becomes a
		// per-process random key. Pending notices do not survive a restart.
		c.FlashSecret = randomSecret()
	}
	if c.FilenamePrefix == "" {
		c.FilenamePrefix = "Proposal"
	}
	if len(c.FilenameFields) == 0 {
		c.FilenameFields = []FilenameField{
			{Name: "Client Company Name", Default: "UnknownClient"},
			{Name: "Proposal date", Default: "UnknownDate"},
		}
	}
	if c.ExcludedPlaceholders == nil {
		c.ExcludedPlaceholders = map[string]string{
			"Salesperson_Name":  "name",
			"Salesperson_Email": "email",
			"Salesperson_Phone": "phone",
		}
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("config: generate flash secret: %v", err))
	}
	return hex.EncodeToString(buf)
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.FilenameFields) != 2 {
		return fmt.Errorf("config: exactly two filename fields required, got %d", len(c.FilenameFields))
	}
	for _, field := range c.FilenameFields {
		if field.Name == "" {
			return errors.New("config: filename field name is required")
		}
		if field.Default == "" {
			return errors.New("config: filename field default is required")
		}
	}
	return nil
}
