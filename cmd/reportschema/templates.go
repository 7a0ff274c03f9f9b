package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportschema/pkg/codec"
	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/openapi"
	"github.com/goliatone/go-reportschema/pkg/preview"
	"github.com/goliatone/go-reportschema/pkg/sample"
)

// loadTemplate decodes path, renumbers it and applies the structural check.
func loadTemplate(path string) (model.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Template{}, err
	}
	tpl, err := codec.Decode(data)
	if err != nil {
		return model.Template{}, fmt.Errorf("%s: %w", path, err)
	}
	tpl = codec.Normalize(tpl)
	if err := model.Check(tpl); err != nil {
		return model.Template{}, fmt.Errorf("%s: %w", path, err)
	}
	return tpl, nil
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func encodeTemplate(tpl model.Template, asYAML bool) ([]byte, error) {
	if asYAML {
		return codec.EncodeYAML(tpl)
	}
	return codec.EncodeJSON(tpl)
}

func (a *app) fmtCmd() *cobra.Command {
	var (
		write  bool
		asYAML bool
	)
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Renumber and re-encode a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			tpl, err := loadTemplate(path)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("yaml") {
				asYAML = isYAMLPath(path)
			}
			data, err := encodeTemplate(tpl, asYAML)
			if err != nil {
				return err
			}
			if write {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				return os.WriteFile(path, data, info.Mode().Perm())
			}
			return writeOutput(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to FILE")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Encode as YAML (defaults to the file's own format)")
	return cmd
}

// generator honours --seed when it was set explicitly.
func generator(cmd *cobra.Command, seed int64) *sample.Generator {
	if cmd.Flags().Changed("seed") {
		return sample.New(sample.WithSeed(seed))
	}
	return sample.New()
}

func (a *app) sampleCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "sample FILE",
		Short: "Print sample report values for a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(generator(cmd, seed).Generate(tpl), "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), append(data, '\n'))
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible values")
	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema FILE",
		Short: "Print the OpenAPI document describing report payloads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(args[0])
			if err != nil {
				return err
			}
			doc := openapi.Document(tpl)
			if err := doc.Validate(cmd.Context()); err != nil {
				return fmt.Errorf("generated document is invalid: %w", err)
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), append(data, '\n'))
		},
	}
}

func (a *app) previewCmd() *cobra.Command {
	var (
		seed int64
		html bool
	)
	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Render a test run of the template filled with sample values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(args[0])
			if err != nil {
				return err
			}
			layout := preview.TemplateText
			if html {
				layout = preview.TemplateHTML
			}
			renderer, err := preview.New(preview.WithTemplate(layout))
			if err != nil {
				return err
			}
			values := generator(cmd, seed).Generate(tpl)
			if err := openapi.ValidatePayload(tpl, values); err != nil {
				a.logger.Warn("sample values do not satisfy the payload schema", "error", err)
			}
			out, err := renderer.Render(tpl, values)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), []byte(out))
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible values")
	cmd.Flags().BoolVar(&html, "html", false, "Render the HTML layout instead of plain text")
	return cmd
}
