package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finmate/internal/cli"
	"github.com/Veraticus/finmate/internal/extract"
)

func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [text|-]",
		Short: "Extract structured fields from free text",
		Long: `Run the extraction pipeline on receipt or onboarding text and print
the JSON result. Text is read from stdin when no argument or "-" is given.`,
		Example: `  finmate extract --form expense "Dominos Total 840.00 Qty 6"
  pbpaste | finmate extract --form expense -`,
		RunE: a.runExtract,
	}

	cmd.Flags().String("form", string(extract.FormOnboarding), "target form (onboarding, expense)")

	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	text, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	form, _ := cmd.Flags().GetString("form")

	result, err := a.pipeline(a.generator()).Extract(cmd.Context(), text, extract.ParseTargetForm(form))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), cli.RenderExtractionNotice(result))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// readInput joins args, or reads r when there are none or the only one is "-".
func readInput(args []string, r io.Reader) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
