package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportschema/internal/prompt"
)

func (a *app) newCmd() *cobra.Command {
	var (
		out    string
		asYAML bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Author a template interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wizard := prompt.NewWizard(prompt.NewSurveyDriver(), prompt.WithValidator(a.validator()))
			result, err := wizard.Run(cmd.Context())
			if err != nil {
				return err
			}
			if out != "" && !cmd.Flags().Changed("yaml") {
				asYAML = isYAMLPath(out)
			}
			data, err := encodeTemplate(result.Template, asYAML)
			if err != nil {
				return err
			}
			if out == "" {
				return writeOutput(cmd.OutOrStdout(), data)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the template to FILE instead of stdout")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Encode as YAML")
	return cmd
}
