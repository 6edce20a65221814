// Package assets resolves background image references into decoded images.
//
// A reference is one of:
//
//   - "" for the built-in default background (a navy to pacific gradient)
//   - a data URI ("data:image/jpeg;base64,...")
//   - an http or https URL
//   - a local file path
//
// A [Store] keeps every decoded image for the life of the process, keyed by
// reference, so rendering many rooms with the same photo decodes it once.
// Remote downloads are also written to a persistent [cache.Cache] so later
// processes skip the network entirely.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/welcomescreen/pkg/cache"
	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

const (
	// DefaultMaxBytes caps the size of a single background image.
	DefaultMaxBytes = 32 << 20

	// DefaultTTL is how long downloaded backgrounds stay in the byte cache.
	DefaultTTL = 7 * 24 * time.Hour

	defaultFetchTimeout = 30 * time.Second
)

// Store loads and caches background images. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	decoded map[string]scene.Background

	cache    cache.Cache
	ttl      time.Duration
	client   *http.Client
	logger   *log.Logger
	maxBytes int64
}

// Option configures a Store.
type Option func(*Store)

// WithCache stores downloaded bytes in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Store) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithHTTPClient sets the client used for URL references.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMaxBytes limits the size of a single image.
func WithMaxBytes(n int64) Option {
	return func(s *Store) { s.maxBytes = n }
}

// NewStore creates a Store. Without options it has no byte cache and uses a
// 30 second HTTP client.
func NewStore(opts ...Option) *Store {
	s := &Store{
		decoded:  make(map[string]scene.Background),
		cache:    cache.NewNullCache(),
		ttl:      DefaultTTL,
		client:   &http.Client{Timeout: defaultFetchTimeout},
		logger:   log.New(io.Discard),
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	return s
}

// Load resolves ref and returns the decoded background. Any failure to read
// or decode the image is an ASSET_LOAD_ERROR; a canceled context is reported
// as CANCELED or RENDER_TIMEOUT.
func (s *Store) Load(ctx context.Context, ref string) (scene.Background, error) {
	s.mu.RLock()
	bg, ok := s.decoded[ref]
	s.mu.RUnlock()
	if ok {
		s.logger.Debug("background from memory", "ref", redact(ref))
		return bg, nil
	}

	bg, err := s.load(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			return scene.Background{}, errors.FromContext(ctx.Err(), "load background")
		}
		return scene.Background{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.decoded[ref]; ok {
		return existing, nil
	}
	s.decoded[ref] = bg
	return bg, nil
}

// Len reports how many decoded images the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.decoded)
}

func (s *Store) load(ctx context.Context, ref string) (scene.Background, error) {
	if err := errors.ValidateAssetRef(ref); err != nil {
		return scene.Background{}, errors.Wrap(errors.ErrCodeAssetLoad, err, "invalid background reference")
	}

	var (
		data []byte
		err  error
	)
	switch {
	case ref == "":
		return scene.Background{Ref: ref, Image: Default()}, nil
	case strings.HasPrefix(ref, "data:"):
		data, err = decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err = s.fetch(ctx, ref)
	default:
		data, err = s.readFile(ref)
	}
	if err != nil {
		return scene.Background{}, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return scene.Background{}, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode background %s", redact(ref))
	}
	b := img.Bounds()
	s.logger.Debug("decoded background", "ref", redact(ref), "width", b.Dx(), "height", b.Dy())

	return scene.Background{
		Ref:   ref,
		Image: img,
		Data:  data,
		MIME:  http.DetectContentType(data),
	}, nil
}

func (s *Store) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "open background")
	}
	defer f.Close()
	return s.readLimited(f, path)
}

func (s *Store) readLimited(r io.Reader, ref string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "read background %s", redact(ref))
	}
	if int64(len(data)) > s.maxBytes {
		return nil, errors.New(errors.ErrCodeAssetLoad, "background %s exceeds %d bytes", redact(ref), s.maxBytes)
	}
	return data, nil
}

func decodeDataURI(ref string) ([]byte, error) {
	meta, body, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, errors.New(errors.ErrCodeAssetLoad, "malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode data URI")
		}
		return data, nil
	}
	data, err := url.PathUnescape(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode data URI")
	}
	return []byte(data), nil
}

// redact keeps data URIs out of logs and error messages.
func redact(ref string) string {
	if strings.HasPrefix(ref, "data:") {
		if meta, _, ok := strings.Cut(ref, ","); ok {
			return meta + ",..."
		}
	}
	if ref == "" {
		return "default"
	}
	return ref
}

// Default returns the built-in background: a vertical navy to pacific
// gradient. Backends cover-fit it to the canvas like any other image.
func Default() image.Image {
	return defaultOnce()
}

var defaultOnce = sync.OnceValue(func() image.Image {
	const w, h = 384, 216
	img := imaging.New(w, h, styles.Navy.NRGBA())
	for y := 0; y < h; y++ {
		c := styles.Lerp(styles.Navy, styles.Pacific, float64(y)/float64(h-1)).NRGBA()
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
})
