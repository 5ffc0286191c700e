// Package probe reads the pixel dimensions of image assets without decoding the full image.
package probe

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

/**************************************************************************************************
** DecodeError reports that an asset's header could not be decoded. The asset keeps unknown
** dimensions for the rest of the process lifetime.
**************************************************************************************************/
type DecodeError struct {
	AssetID string
	Name    string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode dimensions of %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrNoHandle is wrapped by DecodeError when an asset has no content handle.
var ErrNoHandle = errors.New("asset has no content handle")

/**************************************************************************************************
** Result is the outcome of an asynchronous probe.
**************************************************************************************************/
type Result struct {
	Asset  *utils.TImageAsset
	Width  int
	Height int
	Err    error
}

/**************************************************************************************************
** Prober decodes asset headers. Decoded sizes are shared across assets through a cache keyed
** by content URI, so the same file imported twice is only decoded once.
**************************************************************************************************/
type Prober struct {
	cache  *utils.DimensionCache
	logger *logrus.Logger
}

/**************************************************************************************************
** NewProber creates a prober.
**
** @param cache - Shared dimension cache (a private one is created when nil)
** @param logger - Logger instance for output
** @return *Prober - Prober instance, or nil without a logger
**************************************************************************************************/
func NewProber(cache *utils.DimensionCache, logger *logrus.Logger) *Prober {
	if logger == nil {
		return nil
	}
	if cache == nil {
		cache = utils.NewDimensionCache(1024)
	}
	return &Prober{cache: cache, logger: logger}
}

/**************************************************************************************************
** Probe starts decoding in the background and returns a channel that receives exactly one
** Result. Concurrent probes complete in no particular order.
**
** @param ctx - Context for cancellation
** @param asset - Asset to probe
** @return <-chan Result - Future holding the outcome
**************************************************************************************************/
func (p *Prober) Probe(ctx context.Context, asset *utils.TImageAsset) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		w, h, err := p.ProbeSync(ctx, asset)
		out <- Result{Asset: asset, Width: w, Height: h, Err: err}
	}()
	return out
}

/**************************************************************************************************
** ProbeSync decodes the asset header and records the dimensions on the asset. A resolved asset
** returns its dimensions without decoding again; an asset that already failed returns the same
** failure. Cancellation is not a decode failure and leaves the asset untouched.
**
** @param ctx - Context for cancellation
** @param asset - Asset to probe
** @return int - Width in pixels
** @return int - Height in pixels
** @return error - *DecodeError on decode failure, or the context error
**************************************************************************************************/
func (p *Prober) ProbeSync(ctx context.Context, asset *utils.TImageAsset) (int, int, error) {
	if w, h, ok := asset.Dimensions(); ok {
		return w, h, nil
	}
	if err := asset.ProbeError(); err != nil {
		return 0, 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if asset.Handle == nil {
		return 0, 0, p.fail(asset, ErrNoHandle)
	}

	uri := asset.Handle.URI()
	dims, cached := p.cache.Get(uri)
	if !cached {
		var err error
		dims, err = decode(asset.Handle)
		if err != nil {
			return 0, 0, p.fail(asset, err)
		}
		p.cache.Put(uri, dims)
	}

	asset.SetDimensions(dims.Width, dims.Height)
	w, h, _ := asset.Dimensions()
	p.logger.WithFields(logrus.Fields{
		"Name":   asset.DisplayName,
		"Width":  w,
		"Height": h,
		"Cached": cached,
	}).Debugf("Dimensions read")
	return w, h, nil
}

/**************************************************************************************************
** AwaitAll probes every asset of a batch concurrently and waits for all of them. Decode failures
** are not returned: they are recorded on the assets. Only cancellation aborts the wait.
**
** @param ctx - Context for cancellation
** @param assets - Assets to probe
** @param concurrency - Maximum number of decodes in flight (unbounded when <= 0)
** @return error - Context error, if any
**************************************************************************************************/
func (p *Prober) AwaitAll(ctx context.Context, assets []*utils.TImageAsset, concurrency int) error {
	g, gCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			_, _, err := p.ProbeSync(gCtx, asset)
			var decodeErr *DecodeError
			if err != nil && !errors.As(err, &decodeErr) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Prober) fail(asset *utils.TImageAsset, cause error) error {
	err := &DecodeError{AssetID: asset.ID, Name: asset.DisplayName, Err: cause}
	asset.MarkUnreadable(err)
	p.logger.Warnf("⚠️ Could not read dimensions of %s: %v", asset.DisplayName, cause)
	if recorded := asset.ProbeError(); recorded != nil {
		return recorded
	}
	return err
}

func decode(handle utils.Handle) (utils.TDimensions, error) {
	rc, err := handle.Open()
	if err != nil {
		return utils.TDimensions{}, fmt.Errorf("error opening content: %w", err)
	}
	defer rc.Close()

	cfg, _, err := image.DecodeConfig(rc)
	if err != nil {
		return utils.TDimensions{}, fmt.Errorf("error decoding header: %w", err)
	}
	return utils.TDimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
