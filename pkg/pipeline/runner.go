package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/welcomescreen/pkg/assets"
	"github.com/matzehuels/welcomescreen/pkg/config"
	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/observability"
	"github.com/matzehuels/welcomescreen/pkg/payload"
	"github.com/matzehuels/welcomescreen/pkg/qr"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
	"github.com/matzehuels/welcomescreen/pkg/render/sink"
)

// Runner executes renders with shared configuration and asset cache.
//
// The Runner holds no per-render state. Multiple goroutines can safely use
// the same Runner with different requests.
type Runner struct {
	Config config.Config
	Assets *assets.Store
	Logger *log.Logger
}

// NewRunner creates a runner.
// If store is nil, a Store without a byte cache is used.
// If logger is nil, log output is discarded.
func NewRunner(cfg config.Config, store *assets.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if store == nil {
		store = assets.NewStore(assets.WithLogger(logger))
	}
	if cfg.Render.Timeout <= 0 {
		cfg.Render.Timeout = config.DefaultTimeout
	}
	return &Runner{
		Config: cfg,
		Assets: store,
		Logger: logger,
	}
}

// Backend builds the backend named by name with the runner's settings.
// qrSize of zero keeps the backend's own QR size.
func (r *Runner) Backend(name string, qrSize int) (sink.Backend, error) {
	if qrSize == 0 {
		qrSize = r.Config.Render.QRSize
	}
	return sink.New(name,
		sink.WithLogger(r.Logger),
		sink.WithQRPixelSize(qrSize),
		sink.WithChromePath(r.Config.Render.ChromePath),
		sink.WithRSVGPath(r.Config.Render.RSVGPath),
	)
}

// Execute runs the complete prepare → render → encode pipeline. A context
// canceled at any point before Execute returns yields an error and no bytes.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	backend, err := r.Backend(req.Backend, req.QRSize)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := r.Logger.With("render", id[:8])
	hooks := observability.Pipeline()
	result := &Result{
		ID:      id,
		Backend: backend.Name(),
		Room:    req.Profile.RoomNumber,
	}

	// Stage 1: Prepare
	hooks.OnPrepareStart(ctx, id, req.Profile.RoomNumber)
	prepareStart := time.Now()
	s, err := r.Prepare(ctx, req, backend.QRPixelSize())
	result.Stats.PrepareTime = time.Since(prepareStart)
	hooks.OnPrepareComplete(ctx, id, result.Stats.PrepareTime, err)
	if err != nil {
		return nil, err
	}
	result.Scene = s

	logger.Info("prepared scene",
		"room", req.Profile.RoomNumber,
		"style", req.Preset,
		"layers", len(s.Layers),
		"duration", result.Stats.PrepareTime)

	// Stage 2: Render
	renderCtx, cancel := context.WithTimeout(ctx, r.Config.Render.Timeout)
	defer cancel()

	hooks.OnRenderStart(ctx, id, backend.Name())
	renderStart := time.Now()
	img, err := backend.Render(renderCtx, s)
	if err == nil && ctx.Err() != nil {
		err = errors.FromContext(ctx.Err(), backend.Name()+" backend")
	}
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, id, backend.Name(), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	logger.Info("rendered scene",
		"backend", backend.Name(),
		"duration", result.Stats.RenderTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	data, err := sink.EncodePNG(img)
	if err == nil && ctx.Err() != nil {
		data, err = nil, errors.FromContext(ctx.Err(), "encode")
	}
	result.Stats.EncodeTime = time.Since(encodeStart)
	hooks.OnEncodeComplete(ctx, id, len(data), result.Stats.EncodeTime, err)
	if err != nil {
		return nil, err
	}
	result.PNG = data
	result.Stats.Bytes = len(data)

	logger.Info("encoded png",
		"bytes", len(data),
		"duration", result.Stats.EncodeTime)

	return result, nil
}

// Prepare loads the background and encodes both QR codes concurrently, then
// assembles the scene. qrSize is the bitmap size in pixels. req must already
// be validated.
func (r *Runner) Prepare(ctx context.Context, req Request, qrSize int) (*scene.Scene, error) {
	var (
		bg            scene.Background
		wifi, contact *qr.Image
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bg, err = r.Assets.Load(gctx, req.Profile.Background)
		return err
	})
	g.Go(func() error {
		var err error
		wifi, err = qr.Encode(payload.WiFi(req.Profile.SSID, r.Config.Venue.Passphrase), qrSize)
		return err
	})
	g.Go(func() error {
		var err error
		contact, err = qr.Encode(payload.Contact(req.Profile.VenueWhatsApp, req.Profile.RoomNumber), qrSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContext(err, "prepare")
	}

	return scene.Assemble(scene.Input{
		Profile:    req.Profile,
		Copy:       r.Config.Copy,
		Preset:     req.Preset,
		Background: bg,
		WiFiQR:     wifi,
		ContactQR:  contact,
	})
}
