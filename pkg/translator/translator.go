package translator

import (
	"context"
	"errors"
)

type Provider interface {
	Translate(ctx context.Context, text string, options *TranslateOptions) (*Translation, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

// Language codes follow the backend's own code table and are not validated.
type TranslateOptions struct {
	SourceLanguage string
	TargetLanguage string
}

type Translation struct {
	Text string

	SourceLanguage string
	TargetLanguage string
}
