package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/imgtrans/pkg/limiter"
	"github.com/adrianliechti/imgtrans/pkg/otel"
	"github.com/adrianliechti/imgtrans/pkg/translator"
	"github.com/adrianliechti/imgtrans/pkg/translator/aws"
	"github.com/adrianliechti/imgtrans/pkg/translator/azure"
	"github.com/adrianliechti/imgtrans/pkg/translator/deepl"
	"github.com/adrianliechti/imgtrans/pkg/translator/llm"

	"golang.org/x/time/rate"
)

func (cfg *Config) RegisterTranslator(id string, p translator.Provider) {
	if cfg.translators == nil {
		cfg.translators = make(map[string]translator.Provider)
	}

	if _, ok := cfg.translators[""]; !ok {
		cfg.translators[""] = p
	}

	cfg.translators[id] = p
}

func (cfg *Config) Translator(id string) (translator.Provider, error) {
	if cfg.translators != nil {
		if p, ok := cfg.translators[id]; ok {
			return p, nil
		}
	}

	if id == "" && len(cfg.translators) == 0 {
		p, err := aws.New(cfg.Settings.TranslatorRegion)

		if err != nil {
			return nil, err
		}

		return otel.NewTranslator("aws", p), nil
	}

	return nil, errors.New("translator not found: " + id)
}

type translatorConfig struct {
	Type string `yaml:"type"`

	Region string `yaml:"region"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Model string `yaml:"model"`

	Limit *int `yaml:"limit"`
}

type translatorContext struct {
	Region string

	Limiter *rate.Limiter
}

func (cfg *Config) registerTranslators(f *configFile) error {
	var configs map[string]translatorConfig

	if err := f.Translators.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Translators.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		context := translatorContext{
			Region: config.Region,

			Limiter: createLimiter(config.Limit),
		}

		if context.Region == "" {
			context.Region = cfg.Settings.TranslatorRegion
		}

		translator, err := createTranslator(config, context)

		if err != nil {
			return err
		}

		if _, ok := translator.(limiter.Translator); !ok {
			translator = limiter.NewTranslator(context.Limiter, translator)
		}

		if _, ok := translator.(otel.Translator); !ok {
			translator = otel.NewTranslator(id, translator)
		}

		cfg.RegisterTranslator(id, translator)
	}

	return nil
}

func createTranslator(cfg translatorConfig, context translatorContext) (translator.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "aws":
		return awsTranslator(cfg, context)

	case "azure":
		return azureTranslator(cfg, context)

	case "deepl":
		return deeplTranslator(cfg, context)

	case "llm", "openai":
		return llmTranslator(cfg, context)

	default:
		return nil, errors.New("invalid translator type: " + cfg.Type)
	}
}

func awsTranslator(cfg translatorConfig, context translatorContext) (translator.Provider, error) {
	var options []aws.Option

	if cfg.URL != "" {
		options = append(options, aws.WithEndpoint(cfg.URL))
	}

	return aws.New(context.Region, options...)
}

func azureTranslator(cfg translatorConfig, context translatorContext) (translator.Provider, error) {
	var options []azure.Option

	if cfg.Token != "" {
		options = append(options, azure.WithToken(cfg.Token))
	}

	if cfg.Region != "" {
		options = append(options, azure.WithRegion(cfg.Region))
	}

	return azure.New(cfg.URL, options...)
}

func deeplTranslator(cfg translatorConfig, context translatorContext) (translator.Provider, error) {
	var options []deepl.Option

	if cfg.Token != "" {
		options = append(options, deepl.WithToken(cfg.Token))
	}

	return deepl.New(cfg.URL, options...)
}

func llmTranslator(cfg translatorConfig, context translatorContext) (translator.Provider, error) {
	var options []llm.Option

	if cfg.Token != "" {
		options = append(options, llm.WithToken(cfg.Token))
	}

	if cfg.Model != "" {
		options = append(options, llm.WithModel(cfg.Model))
	}

	return llm.New(cfg.URL, options...)
}
