package aws

import (
	"context"
	"net/http"

	"github.com/adrianliechti/imgtrans/pkg/translator"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/translate"
)

var _ translator.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	region   string
	endpoint string

	credentials aws.CredentialsProvider

	translate *translate.Client
}

func New(region string, options ...Option) (*Client, error) {
	if region == "" {
		region = "ap-northeast-1"
	}

	c := &Client{
		client: http.DefaultClient,

		region: region,
	}

	for _, option := range options {
		option(c)
	}

	cfg, err := c.awsConfig()

	if err != nil {
		return nil, err
	}

	c.translate = translate.NewFromConfig(cfg, func(o *translate.Options) {
		if c.endpoint != "" {
			o.BaseEndpoint = aws.String(c.endpoint)
		}
	})

	return c, nil
}

func (c *Client) awsConfig() (aws.Config, error) {
	if c.credentials != nil {
		return aws.Config{
			Region:      c.region,
			Credentials: c.credentials,
			HTTPClient:  c.client,
		}, nil
	}

	return config.LoadDefaultConfig(context.Background(),
		config.WithRegion(c.region),
		config.WithHTTPClient(c.client),
	)
}

func (c *Client) Translate(ctx context.Context, text string, options *translator.TranslateOptions) (*translator.Translation, error) {
	if options == nil {
		options = new(translator.TranslateOptions)
	}

	source := options.SourceLanguage

	if source == "" {
		source = "auto"
	}

	target := options.TargetLanguage

	if target == "" {
		target = "en"
	}

	resp, err := c.translate.TranslateText(ctx, &translate.TranslateTextInput{
		Text: aws.String(text),

		SourceLanguageCode: aws.String(source),
		TargetLanguageCode: aws.String(target),
	})

	if err != nil {
		return nil, err
	}

	return &translator.Translation{
		Text: aws.ToString(resp.TranslatedText),

		SourceLanguage: aws.ToString(resp.SourceLanguageCode),
		TargetLanguage: aws.ToString(resp.TargetLanguageCode),
	}, nil
}
