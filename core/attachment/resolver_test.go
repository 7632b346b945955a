package attachment

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "watch link",
			input: "https://www.youtube.com/watch?v=abc123XYZ9",
			want:  "https://www.youtube.com/embed/abc123XYZ9",
		},
		{
			name:  "watch link with extra params",
			input: "https://www.youtube.com/watch?list=PL1&v=abc123XYZ9&t=42",
			want:  "https://www.youtube.com/embed/abc123XYZ9",
		},
		{
			name:  "short link",
			input: "https://youtu.be/abc123XYZ9",
			want:  "https://www.youtube.com/embed/abc123XYZ9",
		},
		{
			name:  "embed link",
			input: "https://www.youtube.com/embed/abc123XYZ9",
			want:  "https://www.youtube.com/embed/abc123XYZ9",
		},
		{
			name:  "id with dash and underscore",
			input: "https://youtu.be/a-b_c123XYZ",
			want:  "https://www.youtube.com/embed/a-b_c123XYZ",
		},
		{
			name:    "not a link",
			input:   "not-a-link",
			wantErr: ErrInvalidLinkFormat,
		},
		{
			name:    "unrelated url",
			input:   "https://vimeo.com/123456",
			wantErr: ErrInvalidLinkFormat,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrInvalidLinkFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLink(tt.input)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			if assert.NoError(t, err) {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// all recognized shapes of the same id resolve to the same canonical reference
func TestResolveLink_canonical(t *testing.T) {
	id := "dQw4w9WgXcQ"
	shapes := []string{
		"https://www.youtube.com/watch?v=" + id,
		"https://youtu.be/" + id,
		"https://www.youtube.com/embed/" + id,
	}
	want, err := ResolveLink(shapes[0])
	if err != nil {
		t.Fatalf("ResolveLink() failed: %v", err)
	}
	for _, shape := range shapes[1:] {
		got, err := ResolveLink(shape)
		if assert.NoError(t, err) {
			assert.Equal(t, want, got)
		}
	}
}

func testFile(name string, size int64, contentType string) File {
	return File{
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Content:     ioutil.NopCloser(strings.NewReader("")),
	}
}

func TestCheckFile(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		kind    AssetKind
		wantErr bool
	}{
		{name: "video within ceiling", file: testFile("a.mp4", 10<<20, "video/mp4"), kind: KindVideo},
		{name: "video at ceiling", file: testFile("a.mp4", MaxVideoSize, "video/mp4"), kind: KindVideo},
		{name: "video too large", file: testFile("a.mp4", MaxVideoSize+1, "video/mp4"), kind: KindVideo, wantErr: true},
		{name: "image within ceiling", file: testFile("a.png", 1<<20, "image/png"), kind: KindImage},
		{name: "image too large", file: testFile("a.png", MaxImageSize+1, "image/png"), kind: KindImage, wantErr: true},
		{name: "pdf exact type", file: testFile("a.pdf", 1<<20, PDFContentType), kind: KindRaw},
		{name: "pdf wrong type", file: testFile("a.docx", 1<<20, "application/msword"), kind: KindRaw, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFile(tt.file, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckFile_tooLargeDetail(t *testing.T) {
	err := CheckFile(testFile("a.mp4", MaxVideoSize+1, "video/mp4"), KindVideo)
	tooLarge, ok := err.(*FileTooLargeError)
	if !ok {
		t.Fatalf("CheckFile() = %v; want *FileTooLargeError", err)
	}
	assert.Equal(t, int64(MaxVideoSize), tooLarge.Max)
}
