package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/imgtrans/pkg/detector"
	"github.com/adrianliechti/imgtrans/pkg/detector/azure"
	"github.com/adrianliechti/imgtrans/pkg/detector/textract"
	"github.com/adrianliechti/imgtrans/pkg/limiter"
	"github.com/adrianliechti/imgtrans/pkg/otel"

	"golang.org/x/time/rate"
)

func (cfg *Config) RegisterDetector(id string, p detector.Provider) {
	if cfg.detectors == nil {
		cfg.detectors = make(map[string]detector.Provider)
	}

	if _, ok := cfg.detectors[""]; !ok {
		cfg.detectors[""] = p
	}

	cfg.detectors[id] = p
}

func (cfg *Config) Detector(id string) (detector.Provider, error) {
	if cfg.detectors != nil {
		if p, ok := cfg.detectors[id]; ok {
			return p, nil
		}
	}

	if id == "" && len(cfg.detectors) == 0 {
		p, err := textract.New(cfg.Settings.DetectorRegion)

		if err != nil {
			return nil, err
		}

		return otel.NewDetector("textract", p), nil
	}

	return nil, errors.New("detector not found: " + id)
}

type detectorConfig struct {
	Type string `yaml:"type"`

	Region string `yaml:"region"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Limit *int `yaml:"limit"`
}

type detectorContext struct {
	Region string

	Limiter *rate.Limiter
}

func (cfg *Config) registerDetectors(f *configFile) error {
	var configs map[string]detectorConfig

	if err := f.Detectors.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Detectors.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		context := detectorContext{
			Region: config.Region,

			Limiter: createLimiter(config.Limit),
		}

		if context.Region == "" {
			context.Region = cfg.Settings.DetectorRegion
		}

		detector, err := createDetector(config, context)

		if err != nil {
			return err
		}

		if _, ok := detector.(limiter.Detector); !ok {
			detector = limiter.NewDetector(context.Limiter, detector)
		}

		if _, ok := detector.(otel.Detector); !ok {
			detector = otel.NewDetector(id, detector)
		}

		cfg.RegisterDetector(id, detector)
	}

	return nil
}

func createDetector(cfg detectorConfig, context detectorContext) (detector.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "textract", "aws":
		return textractDetector(cfg, context)

	case "azure":
		return azureDetector(cfg, context)

	default:
		return nil, errors.New("invalid detector type: " + cfg.Type)
	}
}

func textractDetector(cfg detectorConfig, context detectorContext) (detector.Provider, error) {
	var options []textract.Option

	if cfg.URL != "" {
		options = append(options, textract.WithEndpoint(cfg.URL))
	}

	return textract.New(context.Region, options...)
}

func azureDetector(cfg detectorConfig, context detectorContext) (detector.Provider, error) {
	var options []azure.Option

	if cfg.Token != "" {
		options = append(options, azure.WithToken(cfg.Token))
	}

	return azure.New(cfg.URL, options...)
}
