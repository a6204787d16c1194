package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/imgtrans/pkg/client"
	"github.com/adrianliechti/imgtrans/pkg/pipeline"
	"github.com/adrianliechti/imgtrans/pkg/renderer"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate <source> <destination>",
	Short: "Overlay translations of the detected text onto a copy of an image",

	Args: cobra.ExactArgs(2),

	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	flags := translateCmd.Flags()

	flags.StringP("from", "f", pipeline.DefaultSourceLanguage, "source language code")
	flags.StringP("to", "t", pipeline.DefaultTargetLanguage, "target language code")

	flags.String("detector", "", "detector id from the config file")
	flags.String("translator", "", "translator id from the config file")

	flags.String("server", os.Getenv("IMGTRANS_URL"), "translate through a running imgtrans server")
	flags.String("token", os.Getenv("IMGTRANS_TOKEN"), "bearer token for the server")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	src, dest := args[0], args[1]

	options := &pipeline.TranslateOptions{
		SourceLanguage: flagValue(cmd, "from"),
		TargetLanguage: flagValue(cmd, "to"),
	}

	if url := flagValue(cmd, "server"); url != "" {
		return translateRemote(cmd, url, src, dest, options)
	}

	cfg, err := loadConfig(cmd)

	if err != nil {
		return err
	}

	p, err := cfg.Pipeline(flagValue(cmd, "detector"), flagValue(cmd, "translator"))

	if err != nil {
		return err
	}

	if err := p.Translate(cmd.Context(), src, dest, options); err != nil {
		return formatError(err)
	}

	return nil
}

func translateRemote(cmd *cobra.Command, url, src, dest string, options *pipeline.TranslateOptions) error {
	if err := pipeline.Validate(src, dest); err != nil {
		return err
	}

	f, err := os.Open(src)

	if err != nil {
		return err
	}

	defer f.Close()

	var opts []client.RequestOption

	if token := flagValue(cmd, "token"); token != "" {
		opts = append(opts, client.WithToken(token))
	}

	c := client.New(url, opts...)

	image, err := c.Images.Translate(cmd.Context(), client.TranslateRequest{
		Name:   filepath.Base(src),
		Reader: f,

		SourceLanguage: options.SourceLanguage,
		TargetLanguage: options.TargetLanguage,

		Format: strings.TrimPrefix(filepath.Ext(dest), "."),

		Detector:   flagValue(cmd, "detector"),
		Translator: flagValue(cmd, "translator"),
	})

	if err != nil {
		return err
	}

	if err := os.WriteFile(dest, image.Content, 0644); err != nil {
		renderer.Discard(dest)
		return err
	}

	return nil
}
