package query

import (
	"github.com/majorfi/shootdesk/pkg/utils"
)

/**************************************************************************************************
** State is the live input of the query builder, as edited by the user: mode, text, ad-hoc query
** images, selected shoots, tags, face references and filter settings.
**************************************************************************************************/
type State struct {
	Mode             utils.TMode
	TextQuery        string
	QueryImages      []*utils.TImageAsset
	SelectedShootIDs []string
	Tags             *utils.TTagSet
	FaceQueryImages  []*utils.TImageAsset
	FaceFilterMode   utils.TFaceFilterMode
	Filters          utils.TFilters
}

/**************************************************************************************************
** NewState returns the initial builder input: text mode, no tags, union face matching and no
** active filter.
**************************************************************************************************/
func NewState() *State {
	return &State{
		Mode:           utils.ModeText,
		Tags:           utils.NewTagSet(),
		FaceFilterMode: utils.FaceFilterUnion,
		Filters:        utils.TFilters{Orientation: utils.OrientationAny},
	}
}

/**************************************************************************************************
** SetMode switches the mode. Switching to text drops the ad-hoc query images, switching to image
** drops the text query; other switches keep both.
**************************************************************************************************/
func (s *State) SetMode(mode utils.TMode) {
	s.Mode = mode
	switch mode {
	case utils.ModeText:
		s.QueryImages = nil
	case utils.ModeImage:
		s.TextQuery = ""
	}
}

// AddQueryImages appends ad-hoc query images.
func (s *State) AddQueryImages(images ...*utils.TImageAsset) {
	s.QueryImages = append(s.QueryImages, images...)
}

// AddFaceQueryImages appends face reference images.
func (s *State) AddFaceQueryImages(images ...*utils.TImageAsset) {
	s.FaceQueryImages = append(s.FaceQueryImages, images...)
}

// ToggleShoot selects a shoot, or unselects it when already selected.
func (s *State) ToggleShoot(shootID string) {
	for i, id := range s.SelectedShootIDs {
		if id == shootID {
			s.SelectedShootIDs = append(s.SelectedShootIDs[:i:i], s.SelectedShootIDs[i+1:]...)
			return
		}
	}
	s.SelectedShootIDs = append(s.SelectedShootIDs, shootID)
}

func (s *State) tags() []string {
	if s.Tags == nil {
		return []string{}
	}
	return s.Tags.Values()
}
