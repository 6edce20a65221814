package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/welcomescreen/pkg/config"
	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/guest"
	"github.com/matzehuels/welcomescreen/pkg/pipeline"
	"github.com/matzehuels/welcomescreen/pkg/render/sink"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	guestFile string // .json or .toml profile, overridden by the flags below
	profile   guest.Profile
	guestType string

	output  string // output path, "-" for stdout
	backend string
	style   string
	qrSize  int
	timeout time.Duration
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a 4K welcome screen for one room",
		Long: `Render a 3840x2160 welcome screen PNG for one guest room.

The guest can be given as a JSON or TOML file (--guest), as flags, or both;
flags override file fields. Venue, WhatsApp template and SSID fall back to
the [venue] section of the config file.

The output defaults to welcome-room-<room>-4K.png in the current directory.`,
		Example: `  welcomescreen render --name "Familia Sánchez Gutiérrez" --type Family --room 208
  welcomescreen render --guest booking.toml --backend html --style basic -o screen.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.guestFile, "guest", "", "guest profile file (.json or .toml)")
	cmd.Flags().StringVar(&opts.profile.PreferredName, "name", "", "guest preferred name")
	cmd.Flags().StringVar(&opts.guestType, "type", "", "guest type: Single, Couple, Family, Friends")
	cmd.Flags().StringVar(&opts.profile.RoomNumber, "room", "", "room number")
	cmd.Flags().StringVar(&opts.profile.VenueName, "venue", "", "venue name (default from config)")
	cmd.Flags().StringVar(&opts.profile.VenueWhatsApp, "whatsapp", "", "WhatsApp URL template containing {ROOM} (default from config)")
	cmd.Flags().StringVar(&opts.profile.SSID, "ssid", "", "Wi-Fi network name (default from config)")
	cmd.Flags().StringVar(&opts.profile.Background, "background", "", "background image path, URL or data URI (default built-in)")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default welcome-room-<room>-4K.png, - for stdout)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", fmt.Sprintf("render backend: %v (default from config)", sink.Names()))
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: basic, enhanced (default from config)")
	cmd.Flags().IntVar(&opts.qrSize, "qr-size", 0, "QR bitmap size in pixels (default per backend)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "render deadline (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not cache downloaded backgrounds")

	registerCompletions(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.timeout > 0 {
		cfg.Render.Timeout = opts.timeout
	}

	req, err := buildRequest(cfg, opts)
	if err != nil {
		return err
	}

	runner, bc, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer bc.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering room %s with %s...", req.Profile.RoomNumber, req.Backend))
	spinner.Start()

	res, err := runner.Execute(ctx, req)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	output := opts.output
	if output == "" {
		output = res.Filename()
	}
	if err := writeOutput(ctx, output, res.PNG); err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	printSuccess("Rendered welcome screen for room %s", res.Room)
	printFile(output)
	printStats(res)
	return nil
}

// buildRequest merges the guest file, flags and config into a request.
func buildRequest(cfg config.Config, opts renderOpts) (pipeline.Request, error) {
	var p guest.Profile
	if opts.guestFile != "" {
		var err error
		if p, err = guest.ReadFile(opts.guestFile); err != nil {
			return pipeline.Request{}, err
		}
	}
	overlay(&p, opts.profile)
	if opts.guestType != "" {
		t, err := guest.ParseType(opts.guestType)
		if err != nil {
			return pipeline.Request{}, err
		}
		p.GuestType = t
	}
	cfg.Venue.ApplyTo(&p)

	req := pipeline.Request{
		Profile: p,
		Backend: cfg.Render.Backend,
		Preset:  cfg.Preset(),
		QRSize:  opts.qrSize,
	}
	if opts.backend != "" {
		req.Backend = opts.backend
	}
	if opts.style != "" {
		req.Preset = styles.Preset(opts.style)
	}
	if err := req.ValidateAndSetDefaults(); err != nil {
		return pipeline.Request{}, err
	}
	return req, nil
}

// overlay copies the non-empty fields of src onto dst.
func overlay(dst *guest.Profile, src guest.Profile) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.PreferredName, src.PreferredName)
	set(&dst.RoomNumber, src.RoomNumber)
	set(&dst.VenueName, src.VenueName)
	set(&dst.VenueWhatsApp, src.VenueWhatsApp)
	set(&dst.SSID, src.SSID)
	set(&dst.Background, src.Background)
}

// writeOutput writes data to path, or to stdout for "-". Files are written
// to a temporary sibling and renamed into place, so a failed or canceled
// write leaves nothing at path.
func writeOutput(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContext(err, "write")
	}
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := ctx.Err(); err != nil {
		return errors.FromContext(err, "write")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
