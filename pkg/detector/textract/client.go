package textract

import (
	"context"
	"net/http"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/adrianliechti/imgtrans/pkg/detector"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

var _ detector.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	region   string
	endpoint string

	credentials aws.CredentialsProvider

	textract *textract.Client
}

func New(region string, options ...Option) (*Client, error) {
	if region == "" {
		region = "us-east-1"
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

	c.textract = textract.NewFromConfig(cfg, func(o *textract.Options) {
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

func (c *Client) Detect(ctx context.Context, input detector.File, options *detector.DetectOptions) (*detector.Document, error) {
	if options == nil {
		options = new(detector.DetectOptions)
	}

	if !isSupported(input) {
		return nil, detector.ErrUnsupported
	}

	resp, err := c.textract.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			Bytes: input.Content,
		},
	})

	if err != nil {
		return nil, err
	}

	return &detector.Document{
		Blocks: toBlocks(resp.Blocks),
	}, nil
}

func isSupported(file detector.File) bool {
	if file.Name == "" && file.ContentType == "" {
		return true
	}

	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return false
}

// Textract only sets TextType on WORD blocks, so LINE blocks come through
// untagged and PAGE blocks come through without text.
func toBlocks(blocks []types.Block) []detector.Block {
	result := make([]detector.Block, 0, len(blocks))

	for _, b := range blocks {
		block := detector.Block{
			Text: b.Text,
		}

		if b.TextType != "" {
			block.Type = aws.String(string(b.TextType))
		}

		if b.Geometry != nil && b.Geometry.BoundingBox != nil {
			box := b.Geometry.BoundingBox

			block.Box = &detector.BoundingBox{
				Left:   toFloat64(box.Left),
				Top:    toFloat64(box.Top),
				Width:  toFloat64(box.Width),
				Height: toFloat64(box.Height),
			}
		}

		result = append(result, block)
	}

	return result
}

// toFloat64 widens the shortest decimal form of f, so 0.1 stays 0.1 instead of
// 0.10000000149 and does not tip a ceiling onto the next pixel.
func toFloat64(f float32) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	return v
}
