package assets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/welcomescreen/pkg/buildinfo"
	"github.com/matzehuels/welcomescreen/pkg/cache"
	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/observability"
)

// fetch downloads a URL reference, consulting the byte cache first.
// Failed downloads are not retried.
func (s *Store) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.AssetKey(rawURL)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, cache.KeyTypeAsset)
		s.logger.Debug("background from cache", "url", rawURL, "bytes", len(data))
		return data, nil
	} else if err != nil {
		s.logger.Warn("asset cache read failed", "url", rawURL, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeAsset)

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "parse background URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "build background request")
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "fetch background %s", rawURL)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad,
			fmt.Errorf("status %d", resp.StatusCode), "fetch background %s", rawURL)
	}

	data, err := s.readLimited(resp.Body, rawURL)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("downloaded background", "url", rawURL, "bytes", len(data), "duration", time.Since(start))

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("asset cache write failed", "url", rawURL, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeAsset, len(data))
	}
	return data, nil
}
