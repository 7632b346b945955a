package cloudinarysvc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/sabaq/sabaq/core"
	"github.com/sabaq/sabaq/core/attachment"
)

// Service uploads local assets to a Cloudinary-style endpoint with an
// unsigned preset: POST multipart {file, upload_preset} to
// {base}/{cloud}/{kind}/upload. Single attempt, no automatic retry; the
// whole upload restarts on failure.
type Service struct {
	conf   core.UploadConfig
	httpc  *http.Client
	logger core.Logger
}

var _ attachment.Uploader = (*Service)(nil)

func NewService(conf core.UploadConfig, logger core.Logger) *Service {
	return &Service{
		conf:   conf,
		httpc:  &http.Client{Timeout: conf.Timeout},
		logger: logger,
	}
}

func (svc *Service) endpoint(kind attachment.AssetKind) string {
	return fmt.Sprintf("%s/%s/%s/upload", strings.TrimRight(svc.conf.BaseURL, "/"), svc.conf.CloudName, kind)
}

func (svc *Service) Upload(ctx context.Context, file attachment.File, kind attachment.AssetKind, onProgress func(int)) (string, error) {
	reqBody, bodyW := io.Pipe()
	mw := multipart.NewWriter(bodyW)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.endpoint(kind), reqBody)
	if err != nil {
		return "", &attachment.UploadError{Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	go func() {
		err := svc.writeForm(mw, file, kind, onProgress)
		if cErr := mw.Close(); err == nil {
			err = cErr
		}
		bodyW.CloseWithError(err) // propagated to httpc.Do via the pipe
	}()

	resp, err := svc.httpc.Do(req)
	if err != nil {
		return "", &attachment.UploadError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		svc.logger.Warn("upload rejected by provider", map[string]interface{}{
			"status": resp.StatusCode, "kind": string(kind),
		})
		return "", &attachment.UploadError{Err: errors.Errorf("provider returned %s", resp.Status)}
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &attachment.UploadError{Err: errors.Wrap(err, "decoding provider response")}
	}
	if out.SecureURL == "" {
		return "", &attachment.UploadError{Err: errors.New("provider response missing secure_url")}
	}

	if onProgress != nil {
		onProgress(100)
	}
	return out.SecureURL, nil
}

func (svc *Service) writeForm(mw *multipart.Writer, file attachment.File, kind attachment.AssetKind, onProgress func(int)) error {
	if err := mw.WriteField("upload_preset", svc.conf.Preset); err != nil {
		return err
	}
	if kind != attachment.KindImage {
		if err := mw.WriteField("resource_type", string(kind)); err != nil {
			return err
		}
	}

	fw, err := mw.CreateFormFile("file", file.Name)
	if err != nil {
		return err
	}
	_, err = io.Copy(fw, &progressReader{r: file.Content, total: file.Size, report: onProgress})
	return err
}

// progressReader reports transfer progress as a monotonically
// non-decreasing percentage. It stops short of 100: the final 100 is
// only reported once the provider has confirmed the upload.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report func(int)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.read += int64(n)
	if pr.report != nil && pr.total > 0 {
		percent := int(pr.read * 100 / pr.total)
		if percent > 99 {
			percent = 99
		}
		if percent > pr.last {
			pr.last = percent
			pr.report(percent)
		}
	}
	return n, err
}
