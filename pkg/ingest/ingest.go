// Package ingest turns raw input files into accepted image assets and routes them to a shoot.
package ingest

import (
	"context"
	"errors"

	"github.com/majorfi/shootdesk/pkg/library"
	"github.com/majorfi/shootdesk/pkg/probe"
	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

/**************************************************************************************************
** RawFile is an input file before validation: its declared media type, size, modification time
** and a handle on its content.
**************************************************************************************************/
type RawFile struct {
	Name         string
	MediaType    string
	Size         int64
	LastModified int64 // epoch milliseconds
	Handle       utils.Handle
}

/**************************************************************************************************
** Bounds are the optional maximum pixel dimensions of accepted images. A nil bound imposes no
** constraint on its axis.
**************************************************************************************************/
type Bounds struct {
	MaxWidth  *int
	MaxHeight *int
}

// IsSet reports whether at least one bound is set.
func (b Bounds) IsSet() bool {
	return b.MaxWidth != nil || b.MaxHeight != nil
}

func (b Bounds) accepts(width, height int) bool {
	if b.MaxWidth != nil && width > *b.MaxWidth {
		return false
	}
	if b.MaxHeight != nil && height > *b.MaxHeight {
		return false
	}
	return true
}

/**************************************************************************************************
** Filter validates raw files and hands the accepted ones to the library.
**************************************************************************************************/
type Filter struct {
	library     *library.Library
	prober      *probe.Prober
	concurrency int
	logger      *logrus.Logger
}

/**************************************************************************************************
** NewFilter creates an ingest filter.
**
** @param lib - Library receiving accepted files
** @param prober - Dimension prober
** @param concurrency - Maximum number of probes in flight (unbounded when <= 0)
** @param logger - Logger instance for output
** @return *Filter - Filter instance, or nil when a dependency is missing
**************************************************************************************************/
func NewFilter(lib *library.Library, prober *probe.Prober, concurrency int, logger *logrus.Logger) *Filter {
	if lib == nil || prober == nil || logger == nil {
		return nil
	}
	return &Filter{library: lib, prober: prober, concurrency: concurrency, logger: logger}
}

/**************************************************************************************************
** Ingest keeps the image files of a batch that fit the bounds and appends them, in arrival
** order, to the destination shoot (or to a new shoot when the destination is empty or unknown).
**
** Without bounds every image is accepted without being decoded. With bounds every candidate is
** probed concurrently; a candidate whose dimensions cannot be read is dropped without failing the
** batch. An empty accepted batch creates no shoot.
**
** @param ctx - Context for cancellation
** @param files - Raw files in arrival order
** @param bounds - Optional maximum dimensions
** @param destinationID - Target shoot identifier, may be empty
** @return []*utils.TImageAsset - Accepted assets in arrival order
** @return string - Identifier of the receiving shoot (empty when nothing was accepted)
** @return error - Context error only
**************************************************************************************************/
func (f *Filter) Ingest(ctx context.Context, files []RawFile, bounds Bounds, destinationID string) ([]*utils.TImageAsset, string, error) {
	candidates := f.Candidates(files)

	accepted := candidates
	if bounds.IsSet() {
		var err error
		accepted, err = f.keepWithinBounds(ctx, candidates, bounds)
		if err != nil {
			return nil, "", err
		}
	}

	if len(accepted) == 0 {
		f.logger.Infof("No photo accepted out of %d file(s)", len(files))
		return accepted, "", nil
	}

	shootID, _ := f.library.CreateOrAppend(destinationID, accepted)
	f.logger.WithFields(logrus.Fields{
		"Received": len(files),
		"Accepted": len(accepted),
		"Shoot":    shootID,
	}).Infof("🌄 Import done")
	return accepted, shootID, nil
}

/**************************************************************************************************
** Candidates turns the image files of a batch into assets, in arrival order, without probing
** them or adding them to the library. Files of any other media type are rejected.
**
** @param files - Raw files in arrival order
** @return []*utils.TImageAsset - One asset per image file
**************************************************************************************************/
func (f *Filter) Candidates(files []RawFile) []*utils.TImageAsset {
	candidates := make([]*utils.TImageAsset, 0, len(files))
	for _, file := range files {
		if !utils.IsImageMediaType(file.MediaType) {
			f.logger.Warnf("Rejected %s (%s): %s", file.Name, file.MediaType, utils.REASON_NOT_AN_IMAGE)
			continue
		}
		candidates = append(candidates, utils.NewImageAsset(file.Name, file.Size, file.LastModified, file.MediaType, file.Handle))
	}
	return candidates
}

func (f *Filter) keepWithinBounds(ctx context.Context, candidates []*utils.TImageAsset, bounds Bounds) ([]*utils.TImageAsset, error) {
	keep := make([]bool, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	if f.concurrency > 0 {
		g.SetLimit(f.concurrency)
	}
	for i, asset := range candidates {
		i, asset := i, asset
		g.Go(func() error {
			w, h, err := f.prober.ProbeSync(gCtx, asset)
			var decodeErr *probe.DecodeError
			switch {
			case errors.As(err, &decodeErr):
				f.logger.Warnf("Rejected %s: %s", asset.DisplayName, utils.REASON_UNREADABLE)
				return nil
			case err != nil:
				return err
			}
			if !bounds.accepts(w, h) {
				f.logger.Warnf("Rejected %s (%dx%d): %s", asset.DisplayName, w, h, utils.REASON_TOO_LARGE)
				return nil
			}
			keep[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	accepted := make([]*utils.TImageAsset, 0, len(candidates))
	for i, asset := range candidates {
		if keep[i] {
			accepted = append(accepted, asset)
		}
	}
	return accepted, nil
}
