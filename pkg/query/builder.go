// Package query turns the builder input into one validated search request, submits it and keeps
// a short history of past submissions.
package query

import (
	"strings"

	"github.com/majorfi/shootdesk/pkg/prefilter"
	"github.com/majorfi/shootdesk/pkg/utils"
)

/**************************************************************************************************
** ShootSource resolves selected shoots to their files.
**************************************************************************************************/
type ShootSource interface {
	SelectionByIDs(ids []string) []*utils.TImageAsset
}

/**************************************************************************************************
** Builder validates builder input per mode and assembles the search query.
**************************************************************************************************/
type Builder struct {
	shoots ShootSource
}

func NewBuilder(shoots ShootSource) *Builder {
	return &Builder{shoots: shoots}
}

/**************************************************************************************************
** Build checks the preconditions of the current mode, resolves the base images and runs them
** through the pre-filter.
**
**   text         non-blank text; no base images
**   image/hybrid at least one base image: the selected shoots if any is selected, else the
**                ad-hoc query images; hybrid keeps the text, image drops it
**   faces        at least one selected shoot and one face reference; text dropped
**   tags         at least one tag and one selected shoot
**
** Outside text mode a query whose base images are all filtered out is rejected as well.
**
** @param state - Builder input
** @return utils.TSearchQuery - Validated query
** @return error - *ValidationError when a precondition fails
**************************************************************************************************/
func (b *Builder) Build(state *State) (utils.TSearchQuery, error) {
	mode := state.Mode
	selected := len(state.SelectedShootIDs) > 0

	q := utils.TSearchQuery{
		Mode:    mode,
		Tags:    state.tags(),
		Filters: state.Filters,
	}
	q.Filters.ShootIDs = append([]string{}, state.SelectedShootIDs...)
	if q.Filters.Orientation == "" {
		q.Filters.Orientation = utils.OrientationAny
	}

	var base []*utils.TImageAsset
	switch mode {
	case utils.ModeText:
		text := strings.TrimSpace(state.TextQuery)
		if text == "" {
			return utils.TSearchQuery{}, invalid(mode, "text query is empty")
		}
		q.TextQuery = text
		q.BaseImages = []*utils.TImageAsset{}
		return q, nil

	case utils.ModeImage, utils.ModeHybrid:
		if selected {
			base = b.shoots.SelectionByIDs(state.SelectedShootIDs)
		} else {
			base = append([]*utils.TImageAsset{}, state.QueryImages...)
		}
		if len(base) == 0 {
			return utils.TSearchQuery{}, invalid(mode, "at least one base image is required")
		}
		if mode == utils.ModeHybrid {
			q.TextQuery = strings.TrimSpace(state.TextQuery)
		}

	case utils.ModeFaces:
		if !selected {
			return utils.TSearchQuery{}, invalid(mode, "at least one shoot must be selected")
		}
		if len(state.FaceQueryImages) == 0 {
			return utils.TSearchQuery{}, invalid(mode, "at least one face reference image is required")
		}
		base = b.shoots.SelectionByIDs(state.SelectedShootIDs)
		q.FaceQueryImages = append([]*utils.TImageAsset{}, state.FaceQueryImages...)
		q.FaceFilterMode = state.FaceFilterMode
		if q.FaceFilterMode == "" {
			q.FaceFilterMode = utils.FaceFilterUnion
		}

	case utils.ModeTags:
		if len(q.Tags) == 0 {
			return utils.TSearchQuery{}, invalid(mode, "at least one tag is required")
		}
		if !selected {
			return utils.TSearchQuery{}, invalid(mode, "at least one shoot must be selected")
		}
		base = b.shoots.SelectionByIDs(state.SelectedShootIDs)

	default:
		return utils.TSearchQuery{}, invalid(mode, "unknown mode")
	}

	q.BaseImages = prefilter.Filter(base, prefilter.FromFilters(q.Filters))
	if len(q.BaseImages) == 0 {
		return utils.TSearchQuery{}, invalid(mode, "no base image left after filters")
	}
	return q, nil
}
