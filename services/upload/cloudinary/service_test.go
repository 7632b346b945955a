package cloudinarysvc

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/sabaq/sabaq/core"
	"github.com/sabaq/sabaq/core/attachment"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type receivedUpload struct {
	cloud   string
	kind    string
	preset  string
	name    string
	content string
}

// newProviderServer simulates the upload provider: it records the
// multipart form and answers with a secure_url.
func newProviderServer(t *testing.T, status int, body string) (*httptest.Server, *receivedUpload) {
	received := new(receivedUpload)
	e := echo.New()
	e.POST("/:cloud/:kind/upload", func(ctx echo.Context) error {
		received.cloud = ctx.Param("cloud")
		received.kind = ctx.Param("kind")
		received.preset = ctx.FormValue("upload_preset")

		file, err := ctx.FormFile("file")
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "missing file"})
		}
		received.name = file.Filename
		src, err := file.Open()
		if err != nil {
			return err
		}
		defer src.Close()
		data, err := ioutil.ReadAll(src)
		if err != nil {
			return err
		}
		received.content = string(data)

		return ctx.JSONBlob(status, []byte(body))
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, received
}

func newService(baseURL string) *Service {
	return NewService(core.UploadConfig{
		BaseURL:   baseURL,
		CloudName: "demo",
		Preset:    "sabaq",
		Timeout:   5 * time.Second,
	}, nopLogger{})
}

func testFile(name, content, contentType string) attachment.File {
	return attachment.File{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: contentType,
		Content:     ioutil.NopCloser(strings.NewReader(content)),
	}
}

func TestService_Upload(t *testing.T) {
	srv, received := newProviderServer(t, http.StatusOK, `{"secure_url":"https://res.example.com/demo/video/upload/intro.mp4"}`)
	svc := newService(srv.URL)

	var mu sync.Mutex
	var percents []int
	ref, err := svc.Upload(context.Background(), testFile("intro.mp4", strings.Repeat("x", 4096), "video/mp4"), attachment.KindVideo, func(p int) {
		mu.Lock()
		percents = append(percents, p)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}
	assert.Equal(t, "https://res.example.com/demo/video/upload/intro.mp4", ref)

	assert.Equal(t, "demo", received.cloud)
	assert.Equal(t, "video", received.kind)
	assert.Equal(t, "sabaq", received.preset)
	assert.Equal(t, "intro.mp4", received.name)
	assert.Len(t, received.content, 4096)

	// progress is monotonically non-decreasing and culminates in 100
	mu.Lock()
	defer mu.Unlock()
	if assert.NotEmpty(t, percents) {
		for i := 1; i < len(percents); i++ {
			assert.GreaterOrEqual(t, percents[i], percents[i-1])
		}
		assert.Equal(t, 100, percents[len(percents)-1])
	}
}

func TestService_Upload_providerRejects(t *testing.T) {
	srv, _ := newProviderServer(t, http.StatusBadRequest, `{"error":{"message":"Invalid upload preset"}}`)
	svc := newService(srv.URL)

	_, err := svc.Upload(context.Background(), testFile("a.png", "img", "image/png"), attachment.KindImage, nil)
	if _, ok := err.(*attachment.UploadError); !ok {
		t.Fatalf("Upload() error = %v; want *attachment.UploadError", err)
	}
}

func TestService_Upload_missingReference(t *testing.T) {
	srv, _ := newProviderServer(t, http.StatusOK, `{"public_id":"abc"}`)
	svc := newService(srv.URL)

	_, err := svc.Upload(context.Background(), testFile("a.png", "img", "image/png"), attachment.KindImage, nil)
	if _, ok := err.(*attachment.UploadError); !ok {
		t.Fatalf("Upload() error = %v; want *attachment.UploadError", err)
	}
}

func TestService_Upload_unreachable(t *testing.T) {
	svc := newService("http://127.0.0.1:1")

	_, err := svc.Upload(context.Background(), testFile("a.png", "img", "image/png"), attachment.KindImage, nil)
	if _, ok := err.(*attachment.UploadError); !ok {
		t.Fatalf("Upload() error = %v; want *attachment.UploadError", err)
	}
}
