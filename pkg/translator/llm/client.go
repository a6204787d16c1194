package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/imgtrans/pkg/translator"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var _ translator.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	url   string
	token string
	model string

	completions openai.ChatCompletionService
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		url = "https://api.openai.com/v1/"
	}

	c := &Client{
		client: http.DefaultClient,

		url:   url,
		model: "gpt-4.1-mini",
	}

	for _, option := range options {
		option(c)
	}

	c.completions = openai.NewChatCompletionService(c.requestOptions()...)

	return c, nil
}

func (c *Client) requestOptions() []option.RequestOption {
	options := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(c.url, "/") + "/"),
		option.WithHTTPClient(c.client),
	}

	if c.token != "" {
		options = append(options, option.WithAPIKey(c.token))
	}

	return options
}

func (c *Client) Translate(ctx context.Context, text string, options *translator.TranslateOptions) (*translator.Translation, error) {
	if options == nil {
		options = new(translator.TranslateOptions)
	}

	target := options.TargetLanguage

	if target == "" {
		target = "en"
	}

	prompt := "Act as a translator. Translate the following text to `" + target + "`."

	if options.SourceLanguage != "" {
		prompt = "Act as a translator. Translate the following text from `" + options.SourceLanguage + "` to `" + target + "`."
	}

	prompt += " Only return the translation, no other text."

	completion, err := c.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),

		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
			openai.UserMessage(text),
		},
	})

	if err != nil {
		return nil, err
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("unable to translate content")
	}

	return &translator.Translation{
		Text: strings.TrimSpace(completion.Choices[0].Message.Content),

		SourceLanguage: options.SourceLanguage,
		TargetLanguage: target,
	}, nil
}
