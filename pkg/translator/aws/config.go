package aws

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
