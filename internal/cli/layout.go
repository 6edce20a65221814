package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// layoutDocument is the JSON printed by the layout command.
type layoutDocument struct {
	Style     styles.Preset     `json:"style"`
	Geometry  layout.Geometry   `json:"geometry"`
	Glass     styles.GlassStyle `json:"glass"`
	Gradients []styles.Gradient `json:"gradients"`
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		style  string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the welcome screen geometry as JSON",
		Long: `Print the absolute position of every element on the 3840x2160 canvas,
together with the glass-card constants and gradient passes of the chosen style.

Geometry does not depend on the guest; every backend must place elements
exactly here (see 'welcomescreen conformance').`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(style, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&style, "style", string(styles.Enhanced), "visual style: basic, enhanced")

	registerCompletions(cmd)

	return cmd
}

func runLayout(style, output string) error {
	p, err := styles.ParsePreset(style)
	if err != nil {
		return err
	}

	doc := layoutDocument{
		Style:     p,
		Geometry:  layout.Default(),
		Glass:     styles.Glass(p),
		Gradients: styles.Gradients(p),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Layout written")
	printFile(output)
	return nil
}
