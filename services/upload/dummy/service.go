package dummyuploadsvc

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"sync"

	"github.com/sabaq/sabaq/core/attachment"
)

// Service is an in-memory Uploader for tests and local development. It
// consumes the file, reports a fixed progress ramp and returns a
// deterministic reference.
type Service struct {
	Err   error         // returned instead of a reference when set
	Block chan struct{} // when set, Upload waits on it before finishing

	mu      sync.Mutex
	uploads []Uploaded
}

type Uploaded struct {
	Name string
	Kind attachment.AssetKind
	Size int64
}

var _ attachment.Uploader = (*Service)(nil)

func NewService() *Service {
	return &Service{}
}

func (svc *Service) Upload(ctx context.Context, file attachment.File, kind attachment.AssetKind, onProgress func(int)) (string, error) {
	size, err := io.Copy(ioutil.Discard, file.Content)
	if err != nil {
		return "", &attachment.UploadError{Err: err}
	}

	if svc.Block != nil {
		select {
		case <-svc.Block:
		case <-ctx.Done():
			return "", &attachment.UploadError{Err: ctx.Err()}
		}
	}

	if onProgress != nil {
		for _, percent := range []int{25, 50, 75} {
			onProgress(percent)
		}
	}

	if svc.Err != nil {
		return "", svc.Err
	}

	svc.mu.Lock()
	svc.uploads = append(svc.uploads, Uploaded{Name: file.Name, Kind: kind, Size: size})
	n := len(svc.uploads)
	svc.mu.Unlock()

	if onProgress != nil {
		onProgress(100)
	}
	return fmt.Sprintf("https://cdn.example.com/%s/%d-%s", kind, n, file.Name), nil
}

func (svc *Service) Uploads() []Uploaded {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]Uploaded, len(svc.uploads))
	copy(out, svc.uploads)
	return out
}
