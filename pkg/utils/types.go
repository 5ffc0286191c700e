package utils

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

/**************************************************************************************************
** TMode is the search strategy selector sent to the search backend.
**************************************************************************************************/
type TMode string

const (
	ModeText   TMode = "text"
	ModeImage  TMode = "image"
	ModeHybrid TMode = "hybrid"
	ModeFaces  TMode = "faces"
	ModeTags   TMode = "tags"
)

/**************************************************************************************************
** TOrientation is both the requested orientation filter (any, portrait, landscape) and the
** orientation derived from an asset's pixel dimensions (portrait, landscape, unknown).
**************************************************************************************************/
type TOrientation string

const (
	OrientationAny       TOrientation = "any"
	OrientationPortrait  TOrientation = "portrait"
	OrientationLandscape TOrientation = "landscape"
	OrientationUnknown   TOrientation = "unknown"
)

/**************************************************************************************************
** TFaceFilterMode tells the backend whether any reference face is enough (union) or whether all
** of them must co-occur in a result (intersection).
**************************************************************************************************/
type TFaceFilterMode string

const (
	FaceFilterUnion        TFaceFilterMode = "union"
	FaceFilterIntersection TFaceFilterMode = "intersection"
)

/**************************************************************************************************
** Handle is an opaque reference to the binary content of an asset. Content is only read when a
** probe decodes the header or when a gateway streams the bytes to the backend.
**************************************************************************************************/
type Handle interface {
	Open() (io.ReadCloser, error)
	URI() string
}

// FileHandle points to a file on the local disk.
type FileHandle struct {
	Path string
}

func (h FileHandle) Open() (io.ReadCloser, error) { return os.Open(h.Path) }
func (h FileHandle) URI() string                  { return "file://" + h.Path }

// BytesHandle keeps the content in memory. Each handle gets its own URI so that two handles with
// the same name never share a cache entry.
type BytesHandle struct {
	Name string
	Data []byte
	uri  string
}

func NewBytesHandle(name string, data []byte) *BytesHandle {
	return &BytesHandle{Name: name, Data: data, uri: "mem://" + uuid.NewString() + "/" + name}
}

func (h *BytesHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(byteReader(h.Data)), nil
}
func (h *BytesHandle) URI() string { return h.uri }

/**************************************************************************************************
** TImageAsset is an imported image file plus its metadata. Width and height are unknown until a
** probe resolves them; they are written once, together, and never change afterwards. A failed
** probe leaves them unknown for good.
**
** TImageAsset carries a mutex and must only be shared by pointer.
**************************************************************************************************/
type TImageAsset struct {
	ID           string // Unique identifier
	DisplayName  string // File name shown to the user
	ByteSize     int64  // Size of the content in bytes
	LastModified int64  // Last modification time, epoch milliseconds
	MediaType    string // Declared media type (e.g. image/jpeg)
	Handle       Handle // Opaque content reference

	mu       sync.RWMutex
	width    int
	height   int
	resolved bool
	probeErr error
}

/**************************************************************************************************
** NewImageAsset creates an asset with a fresh identifier and unknown dimensions.
**************************************************************************************************/
func NewImageAsset(name string, size int64, lastModified int64, mediaType string, handle Handle) *TImageAsset {
	return &TImageAsset{
		ID:           uuid.NewString(),
		DisplayName:  name,
		ByteSize:     size,
		LastModified: lastModified,
		MediaType:    mediaType,
		Handle:       handle,
	}
}

/**************************************************************************************************
** Dimensions returns the pixel width and height and whether they are known.
**************************************************************************************************/
func (a *TImageAsset) Dimensions() (int, int, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.width, a.height, a.resolved
}

/**************************************************************************************************
** SetDimensions records the decoded dimensions. Only the first successful write on an asset that
** has not failed a probe is kept; later writes are ignored and reported with false.
**
** @param width - Decoded pixel width
** @param height - Decoded pixel height
** @return bool - True if this call set the dimensions
**************************************************************************************************/
func (a *TImageAsset) SetDimensions(width, height int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolved || a.probeErr != nil {
		return false
	}
	a.width, a.height, a.resolved = width, height, true
	return true
}

/**************************************************************************************************
** MarkUnreadable remembers a probe failure. An asset that already has dimensions is untouched.
**************************************************************************************************/
func (a *TImageAsset) MarkUnreadable(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolved || a.probeErr != nil {
		return
	}
	a.probeErr = err
}

// ProbeError returns the remembered probe failure, if any.
func (a *TImageAsset) ProbeError() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.probeErr
}

/**************************************************************************************************
** TShoot is a named, ordered collection of assets from one import batch. The order of Files is
** the display and navigation order. Shoots synthesized from a remote tag search have no files
** and carry the backend payload in Results instead.
**************************************************************************************************/
type TShoot struct {
	ID        string            `json:"id"`                // Unique identifier, never reused
	Name      string            `json:"name"`              // Display name
	Files     []*TImageAsset    `json:"-"`                 // Ordered member assets
	Results   []json.RawMessage `json:"results,omitempty"` // Remote results payload
	CreatedAt time.Time         `json:"createdAt"`         // Creation time
}

/**************************************************************************************************
** TDateRange bounds asset timestamps. A nil bound is open on that side.
**************************************************************************************************/
type TDateRange struct {
	Start *time.Time
	End   *time.Time
}

/**************************************************************************************************
** TFilters holds the client-side pre-filter settings plus the shoots the query is scoped to.
**************************************************************************************************/
type TFilters struct {
	DateRange    TDateRange
	Orientation  TOrientation
	ExcludeLarge bool
	MaxWidth     *int
	MaxHeight    *int
	ShootIDs     []string
}

/**************************************************************************************************
** TSearchQuery is the normalized, validated search request handed to the search gateway.
** FaceFilterMode is only meaningful in faces mode.
**************************************************************************************************/
type TSearchQuery struct {
	Mode            TMode
	TextQuery       string
	BaseImages      []*TImageAsset
	Tags            []string
	FaceQueryImages []*TImageAsset
	FaceFilterMode  TFaceFilterMode
	Filters         TFilters
}

/**************************************************************************************************
** THistoryEntry is a value snapshot of a past submission. BaseImages and Tags are private copies,
** so later changes to a shoot never alter what was recorded.
**************************************************************************************************/
type THistoryEntry struct {
	ID         int64
	Mode       TMode
	TextQuery  string
	BaseImages []*TImageAsset
	Tags       []string
	CreatedAt  time.Time
}

/**************************************************************************************************
** TResultSet is the search backend response. Items are kept opaque.
**************************************************************************************************/
type TResultSet struct {
	Results []json.RawMessage `json:"results"`
	Images  []json.RawMessage `json:"images,omitempty"`
}

// TUploadAck is the upload backend response.
type TUploadAck struct {
	Images []json.RawMessage `json:"images"`
}

// TAssistantReply is the assistant backend response.
type TAssistantReply struct {
	Reply string `json:"reply"`
}

/**************************************************************************************************
** TLibraryStats summarizes the whole library, as shown above the shoot list.
**************************************************************************************************/
type TLibraryStats struct {
	Shoots     int
	Files      int
	TotalBytes int64
	SizeLabel  string
}
