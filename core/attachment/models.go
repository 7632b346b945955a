package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/labstack/gommon/bytes"
	"github.com/volatiletech/null/v8"
)

// AssetKind selects the upload provider sub-endpoint for an asset.
type AssetKind string

const (
	KindImage AssetKind = "image"
	KindVideo AssetKind = "video"
	KindRaw   AssetKind = "raw"
)

// Source tells where a draft's media comes from. Switching source
// clears all dependent fields.
type Source string

const (
	SourceLocal Source = "local"
	SourceLink  Source = "link"
)

// SlotID identifies one of the two upload targets in a draft.
type SlotID int

const (
	SlotMedia SlotID = iota
	SlotPreview
)

func (id SlotID) String() string {
	if id == SlotPreview {
		return "preview"
	}
	return "media"
}

// Status is the upload lifecycle of one asset slot.
type Status int

const (
	StatusIdle Status = iota
	StatusUploading
	StatusDone
	StatusFailed
)

// Size ceilings per asset kind; checked against the declared size
// before any transfer starts.
const (
	MaxVideoSize = 100 << 20 // 100 MB
	MaxImageSize = 5 << 20   // 5 MB

	PDFContentType = "application/pdf"
)

var (
	ErrInvalidLinkFormat = errors.New("unrecognized video link")
	ErrBusy              = errors.New("a submission is already in progress")
)

// FileTooLargeError rejects a file whose declared size exceeds the
// ceiling for its kind.
type FileTooLargeError struct {
	Size int64
	Max  int64
}

func (err *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is too large (%s; max %s)", bytes.Format(err.Size), bytes.Format(err.Max))
}

// UnsupportedTypeError rejects a file whose declared media type does not
// match what the slot expects.
type UnsupportedTypeError struct {
	ContentType string
	Want        string
}

func (err *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q (want %s)", err.ContentType, err.Want)
}

// UploadError wraps a transfer failure: network error, non-2xx response
// or a success response missing the reference field. There is no partial
// recovery; the whole upload must be restarted.
type UploadError struct {
	Err error
}

func (err *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", err.Err)
}

func (err *UploadError) Unwrap() error { return err.Err }

// File is an opaque local binary handle with its browser-declared
// attributes. Content is a scoped resource: the draft slot that accepts
// the file owns it and releases it on replacement or discard.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.ReadCloser
}

// UploadTask represents one in-flight transfer. It is exclusively owned
// by the draft slot that spawned it; a replacement file abandons it and
// its late callbacks are ignored via the generation counter.
type UploadTask struct {
	ID   uuid.UUID
	Slot SlotID
	Gen  uint64
	Kind AssetKind
	File File
}

// Submission is the finalized draft payload sent to the backend
// registration endpoint.
type Submission struct {
	Title      string      `json:"title" validate:"required"`
	MediaURL   string      `json:"media_url" validate:"required"`
	Source     Source      `json:"source"`
	PreviewURL null.String `json:"preview_url,omitempty"`
}

type (
	// Uploader transfers a local asset to the external storage endpoint.
	// Single attempt, no automatic retry. onProgress receives monotonically
	// non-decreasing percentages culminating in 100 on success.
	Uploader interface {
		Upload(ctx context.Context, file File, kind AssetKind, onProgress func(percent int)) (string, error)
	}

	// Submitter registers a finalized draft with the backend and returns
	// the server-assigned attachment id.
	Submitter interface {
		Submit(ctx context.Context, sub Submission) (string, error)
	}
)
