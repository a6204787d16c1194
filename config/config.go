package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/adrianliechti/imgtrans/pkg/auth"
	"github.com/adrianliechti/imgtrans/pkg/detector"
	"github.com/adrianliechti/imgtrans/pkg/limiter"
	"github.com/adrianliechti/imgtrans/pkg/translator"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Settings *Settings

	Authorizers []auth.Provider

	detectors   map[string]detector.Provider
	translators map[string]translator.Provider
}

// New returns a configuration with default settings and no registered
// providers. Lookups of the default id then fall back to Textract and
// AWS Translate in the configured regions.
func New() *Config {
	return &Config{
		Address: ":8080",

		Settings: DefaultSettings(),
	}
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := New()

	if err := c.registerSettings(file); err != nil {
		return nil, err
	}

	if err := c.registerAuthorizers(file); err != nil {
		return nil, err
	}

	if err := c.registerDetectors(file); err != nil {
		return nil, err
	}

	if err := c.registerTranslators(file); err != nil {
		return nil, err
	}

	return c, nil
}

// Configure applies fn to the settings of this configuration.
func (c *Config) Configure(fn func(*Settings)) {
	c.Settings.Configure(fn)
}

type configFile struct {
	Address string `yaml:"address"`

	Settings settingsConfig `yaml:"settings"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Detectors   yaml.Node `yaml:"detectors"`
	Translators yaml.Node `yaml:"translators"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return limiter.New(*limit)
}
