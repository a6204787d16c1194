package textract

import (
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.endpoint = url
	}
}

func WithCredentials(credentials aws.CredentialsProvider) Option {
	return func(c *Client) {
		c.credentials = credentials
	}
}

// https://docs.aws.amazon.com/textract/latest/dg/limits-document.html
var SupportedExtensions = []string{
	".jpeg", ".jpg",
	".png",
	".tiff", ".tif",
	".pdf",
}

var SupportedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/tiff",
	"application/pdf",
}
