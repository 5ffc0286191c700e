package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/majorfi/shootdesk/pkg/gateway"
	"github.com/majorfi/shootdesk/pkg/ingest"
	"github.com/majorfi/shootdesk/pkg/library"
	"github.com/majorfi/shootdesk/pkg/probe"
	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
)

/**************************************************************************************************
** workspace wires the library, the ingest filter and the backend client of one CLI run.
**************************************************************************************************/
type workspace struct {
	logger  *logrus.Logger
	library *library.Library
	prober  *probe.Prober
	filter  *ingest.Filter
	client  *gateway.Client
}

/**************************************************************************************************
** newWorkspace builds the components of a run from the loaded configuration.
**
** @param logger - Logger instance for output
** @return *workspace - Wired components
** @return error - Invalid API URL
**************************************************************************************************/
func newWorkspace(logger *logrus.Logger) (*workspace, error) {
	lib := library.New(logger)
	prober := probe.NewProber(utils.NewDimensionCache(1024), logger)
	filter := ingest.NewFilter(lib, prober, probeConcurrency, logger)

	client := gateway.NewClient(apiURL, time.Duration(httpTimeout)*time.Second, dryRun, logger)
	if client == nil {
		return nil, fmt.Errorf("invalid API URL '%s'", apiURL)
	}

	return &workspace{logger: logger, library: lib, prober: prober, filter: filter, client: client}, nil
}

func (w *workspace) bounds() ingest.Bounds {
	return ingest.Bounds{MaxWidth: utils.IntPtr(maxWidth), MaxHeight: utils.IntPtr(maxHeight)}
}

/**************************************************************************************************
** importPaths imports every path as its own shoot. Paths whose files are all rejected create no
** shoot.
**
** @param ctx - Context for cancellation
** @param paths - Files or directories
** @return []string - Identifiers of the created shoots, in path order
** @return error - Unreadable path or cancellation
**************************************************************************************************/
func (w *workspace) importPaths(ctx context.Context, paths []string) ([]string, error) {
	ids := make([]string, 0, len(paths))
	for _, path := range paths {
		files, err := ingest.LoadPath(path)
		if err != nil {
			return nil, err
		}
		_, shootID, err := w.filter.Ingest(ctx, files, w.bounds(), "")
		if err != nil {
			return nil, err
		}
		if shootID == "" {
			continue
		}
		w.library.Rename(shootID, filepath.Base(filepath.Clean(path)))
		ids = append(ids, shootID)
	}
	return ids, nil
}

/**************************************************************************************************
** loadAssets reads images that stay outside the library, such as query or face references.
**************************************************************************************************/
func (w *workspace) loadAssets(paths []string) ([]*utils.TImageAsset, error) {
	assets := []*utils.TImageAsset{}
	for _, path := range paths {
		files, err := ingest.LoadPath(path)
		if err != nil {
			return nil, err
		}
		assets = append(assets, w.filter.Candidates(files)...)
	}
	return assets, nil
}

/**************************************************************************************************
** resolveShoots maps shoot names or 1-based positions to shoot identifiers.
**************************************************************************************************/
func (w *workspace) resolveShoots(refs []string) ([]string, error) {
	shoots := w.library.ListAll()
	ids := make([]string, 0, len(refs))
	for _, ref := range utils.RemoveEmptyStrings(refs) {
		id := ""
		for i, shoot := range shoots {
			if shoot.Name == ref || shoot.ID == ref || fmt.Sprint(i+1) == ref {
				id = shoot.ID
				break
			}
		}
		if id == "" {
			return nil, fmt.Errorf("unknown shoot '%s'", ref)
		}
		if !utils.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

/**************************************************************************************************
** resolveDimensions probes every photo of the library so that orientation and size filters see
** real dimensions instead of letting unknown ones through.
**************************************************************************************************/
func (w *workspace) resolveDimensions(ctx context.Context) error {
	return w.prober.AwaitAll(ctx, w.library.AllFiles(), probeConcurrency)
}

func (w *workspace) printLibrary() {
	utils.PrintShoots(stdout, w.library.ListAll(), w.library.Stats())
}
