package config

import (
	"github.com/adrianliechti/imgtrans/pkg/otel"
	"github.com/adrianliechti/imgtrans/pkg/pipeline"
	"github.com/adrianliechti/imgtrans/pkg/renderer"
)

// Pipeline wires the detector and translator registered under the given ids
// with a canvas renderer styled from the current settings.
func (cfg *Config) Pipeline(detectorID, translatorID string) (*pipeline.Pipeline, error) {
	d, err := cfg.Detector(detectorID)

	if err != nil {
		return nil, err
	}

	t, err := cfg.Translator(translatorID)

	if err != nil {
		return nil, err
	}

	r := otel.NewRenderer(renderer.New())

	return pipeline.New(d, t,
		pipeline.WithRenderer(r),
		pipeline.WithStyle(cfg.Settings.Style()),
	), nil
}
