package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/welcomescreen/pkg/guest"
	"github.com/matzehuels/welcomescreen/pkg/pipeline"
	"github.com/matzehuels/welcomescreen/pkg/render/sink"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// sampleProfile exercises group truncation and the SSID caption.
var sampleProfile = guest.Profile{
	PreferredName: "Familia Sánchez Gutiérrez",
	GuestType:     guest.Family,
	RoomNumber:    "208",
}

// conformanceCommand creates the conformance command.
func (c *CLI) conformanceCommand() *cobra.Command {
	var (
		backends string
		style    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "conformance",
		Short: "Check that every backend places elements at the computed layout",
		Long: fmt.Sprintf(`Assemble a sample scene, measure where each backend places every element,
and compare the result with the computed layout. Coordinates must agree
within %gpx.

Measurement reads each backend's own drawing instructions, so Chrome and
rsvg-convert are not required.`, sink.Tolerance),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConformance(cmd.Context(), strings.Split(backends, ","), style, asJSON)
		},
	}

	cmd.Flags().StringVar(&backends, "backends", strings.Join(sink.Names(), ","), "backends to compare (comma-separated)")
	cmd.Flags().StringVar(&style, "style", string(styles.Enhanced), "visual style: basic, enhanced")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")

	registerCompletions(cmd)

	return cmd
}

func (c *CLI) runConformance(ctx context.Context, names []string, style string, asJSON bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	req := pipeline.Request{Profile: sampleProfile, Preset: styles.Preset(style)}
	cfg.Venue.ApplyTo(&req.Profile)
	if err := req.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg, nil, logger)
	backends := make([]sink.Backend, 0, len(names))
	for _, name := range names {
		b, err := runner.Backend(strings.TrimSpace(name), 0)
		if err != nil {
			return err
		}
		backends = append(backends, b)
	}

	s, err := runner.Prepare(ctx, req, sink.CanvasQRPixelSize)
	if err != nil {
		return err
	}
	reports, err := sink.Conform(s, backends...)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Measured %d backends", len(reports)))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		fmt.Println(conformanceTable(reports))
	}

	failed := 0
	for _, r := range reports {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		if !asJSON {
			printWarning("%d of %d backends drift from the layout", failed, len(reports))
		}
		return fmt.Errorf("%d backend(s) failed conformance", failed)
	}
	if !asJSON {
		printSuccess("All backends match the layout")
	}
	return nil
}

func conformanceTable(reports []sink.Report) string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		status := styleIconSuccess.Render(iconSuccess + " match")
		detail := ""
		if !r.OK() {
			status = styleIconError.Render(fmt.Sprintf("%s %d off", iconError, len(r.Mismatches)))
			detail = r.Mismatches[0].String()
			if len(r.Mismatches) > 1 {
				detail += fmt.Sprintf(" (+%d more)", len(r.Mismatches)-1)
			}
		}
		rows = append(rows, []string{r.Backend, status, StyleDim.Render(detail)})
	}
	return renderTable([]string{"BACKEND", "RESULT", "FIRST MISMATCH"}, rows)
}

