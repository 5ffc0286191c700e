// Package prefilter narrows a list of assets by date, orientation and size before a query is
// sent. It never fails on partial data: an asset whose dimensions are still unknown passes the
// orientation and size tests.
package prefilter

import (
	"github.com/majorfi/shootdesk/pkg/utils"
)

/**************************************************************************************************
** Options are the pre-filter settings. MaxWidth and MaxHeight only matter when ExcludeLarge is
** set; an unset bound never excludes anything on its axis.
**************************************************************************************************/
type Options struct {
	DateRange    utils.TDateRange
	Orientation  utils.TOrientation
	ExcludeLarge bool
	MaxWidth     *int
	MaxHeight    *int
}

// FromFilters extracts the pre-filter settings of a query's filters.
func FromFilters(f utils.TFilters) Options {
	return Options{
		DateRange:    f.DateRange,
		Orientation:  f.Orientation,
		ExcludeLarge: f.ExcludeLarge,
		MaxWidth:     f.MaxWidth,
		MaxHeight:    f.MaxHeight,
	}
}

/**************************************************************************************************
** test is one named predicate. Active reports whether the options enable it at all.
**************************************************************************************************/
type test struct {
	name   string
	active func(opts Options) bool
	pass   func(asset *utils.TImageAsset, opts Options) bool
}

var checks = []test{
	{
		name:   "date",
		active: func(opts Options) bool { return opts.DateRange.Start != nil || opts.DateRange.End != nil },
		pass:   passDate,
	},
	{
		name:   "orientation",
		active: func(opts Options) bool { return opts.Orientation != "" && opts.Orientation != utils.OrientationAny },
		pass:   passOrientation,
	},
	{
		name:   "size",
		active: func(opts Options) bool { return opts.ExcludeLarge },
		pass:   passSize,
	},
}

/**************************************************************************************************
** Filter returns, in their original order, the assets that pass every active test. The input
** slice and the assets are left untouched.
**
** @param assets - Assets to filter
** @param opts - Pre-filter settings
** @return []*utils.TImageAsset - New slice with the passing assets
**************************************************************************************************/
func Filter(assets []*utils.TImageAsset, opts Options) []*utils.TImageAsset {
	active := make([]test, 0, len(checks))
	for _, t := range checks {
		if t.active(opts) {
			active = append(active, t)
		}
	}

	out := make([]*utils.TImageAsset, 0, len(assets))
	for _, asset := range assets {
		if passesAll(asset, opts, active) {
			out = append(out, asset)
		}
	}
	return out
}

func passesAll(asset *utils.TImageAsset, opts Options, active []test) bool {
	for _, t := range active {
		if !t.pass(asset, opts) {
			return false
		}
	}
	return true
}

/**************************************************************************************************
** Orientation derives portrait or landscape from the asset's dimensions. Square images and
** assets with unknown dimensions are unknown.
**************************************************************************************************/
func Orientation(asset *utils.TImageAsset) utils.TOrientation {
	w, h, ok := asset.Dimensions()
	if !ok || w <= 0 || h <= 0 {
		return utils.OrientationUnknown
	}
	switch {
	case h > w:
		return utils.OrientationPortrait
	case w > h:
		return utils.OrientationLandscape
	default:
		return utils.OrientationUnknown
	}
}

// start <= timestamp <= end, a nil bound being open
func passDate(asset *utils.TImageAsset, opts Options) bool {
	if start := opts.DateRange.Start; start != nil && asset.LastModified < start.UnixMilli() {
		return false
	}
	if end := opts.DateRange.End; end != nil && asset.LastModified > end.UnixMilli() {
		return false
	}
	return true
}

func passOrientation(asset *utils.TImageAsset, opts Options) bool {
	derived := Orientation(asset)
	if derived == utils.OrientationUnknown {
		return true
	}
	return derived == opts.Orientation
}

func passSize(asset *utils.TImageAsset, opts Options) bool {
	w, h, ok := asset.Dimensions()
	if !ok {
		return true
	}
	if opts.MaxWidth != nil && w > *opts.MaxWidth {
		return false
	}
	if opts.MaxHeight != nil && h > *opts.MaxHeight {
		return false
	}
	return true
}
