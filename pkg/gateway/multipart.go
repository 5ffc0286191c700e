package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/majorfi/shootdesk/pkg/utils"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type multipartForm struct {
	buf         *bytes.Buffer
	writer      *multipart.Writer
	body        io.Reader
	contentType string
}

func newMultipartForm() *multipartForm {
	buf := &bytes.Buffer{}
	return &multipartForm{buf: buf, writer: multipart.NewWriter(buf)}
}

func (f *multipartForm) field(name, value string) error {
	return f.writer.WriteField(name, value)
}

func (f *multipartForm) jsonField(name string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", name, err)
	}
	return f.writer.WriteField(name, string(encoded))
}

/**************************************************************************************************
** file streams an asset's bytes as one part of the form. The part carries the asset's display
** name and declared media type.
**************************************************************************************************/
func (f *multipartForm) file(name string, asset *utils.TImageAsset) error {
	if asset.Handle == nil {
		return fmt.Errorf("error reading %s: no content handle", asset.DisplayName)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(asset.DisplayName)))
	mediaType := asset.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)

	part, err := f.writer.CreatePart(header)
	if err != nil {
		return err
	}

	reader, err := asset.Handle.Open()
	if err != nil {
		return fmt.Errorf("error reading %s: %w", asset.DisplayName, err)
	}
	defer reader.Close()

	if _, err := io.Copy(part, reader); err != nil {
		return fmt.Errorf("error reading %s: %w", asset.DisplayName, err)
	}
	return nil
}

func (f *multipartForm) files(name string, assets []*utils.TImageAsset) error {
	for _, asset := range assets {
		if err := f.file(name, asset); err != nil {
			return err
		}
	}
	return nil
}

func (f *multipartForm) close() error {
	if err := f.writer.Close(); err != nil {
		return err
	}
	f.body = f.buf
	f.contentType = f.writer.FormDataContentType()
	return nil
}

/**************************************************************************************************
** Wire shape of the filters field, as the backend reads it.
**************************************************************************************************/
type wireDateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

type wireFilters struct {
	DateRange          wireDateRange         `json:"dateRange"`
	Orientation        utils.TOrientation    `json:"orientation"`
	ExcludeLargeImages bool                  `json:"excludeLargeImages"`
	MaxWidth           *int                  `json:"maxWidth"`
	MaxHeight          *int                  `json:"maxHeight"`
	ShootIDs           []string              `json:"shootIds,omitempty"`
	FaceFilterMode     utils.TFaceFilterMode `json:"faceFilterMode,omitempty"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toWireFilters(q utils.TSearchQuery) wireFilters {
	orientation := q.Filters.Orientation
	if orientation == "" {
		orientation = utils.OrientationAny
	}
	wf := wireFilters{
		DateRange: wireDateRange{
			Start: formatTime(q.Filters.DateRange.Start),
			End:   formatTime(q.Filters.DateRange.End),
		},
		Orientation:        orientation,
		ExcludeLargeImages: q.Filters.ExcludeLarge,
		MaxWidth:           q.Filters.MaxWidth,
		MaxHeight:          q.Filters.MaxHeight,
		ShootIDs:           q.Filters.ShootIDs,
	}
	if q.Mode == utils.ModeFaces {
		wf.FaceFilterMode = q.FaceFilterMode
	}
	return wf
}

/**************************************************************************************************
** encodeSearch builds the search form: mode, query, base images, face references (faces mode
** only), tags (omitted when empty) and filters.
**************************************************************************************************/
func encodeSearch(q utils.TSearchQuery) (*multipartForm, error) {
	form := newMultipartForm()
	if err := form.field("mode", string(q.Mode)); err != nil {
		return nil, err
	}
	if err := form.field("query", q.TextQuery); err != nil {
		return nil, err
	}
	if err := form.files("images", q.BaseImages); err != nil {
		return nil, err
	}
	if q.Mode == utils.ModeFaces {
		if err := form.files("face_images", q.FaceQueryImages); err != nil {
			return nil, err
		}
	}
	if len(q.Tags) > 0 {
		if err := form.jsonField("tags", q.Tags); err != nil {
			return nil, err
		}
	}
	if err := form.jsonField("filters", toWireFilters(q)); err != nil {
		return nil, err
	}
	return form, form.close()
}
