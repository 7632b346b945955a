package attachment

import (
	"fmt"
	"regexp"
)

// embedURLTemplate is the canonical playable form; every recognized link
// shape resolves to it.
const embedURLTemplate = "https://www.youtube.com/embed/%s"

// linkPatterns are tried in fixed order; first match wins. Unmatched
// input is a hard classification failure, never a fallback guess.
var linkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^#&?]*&)*v=([\w-]+)`),
	regexp.MustCompile(`youtu\.be/([\w-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([\w-]+)`),
}

// ResolveLink classifies a pasted video link and returns the canonical
// embeddable reference for it, or ErrInvalidLinkFormat.
func ResolveLink(input string) (string, error) {
	for _, pattern := range linkPatterns {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return fmt.Sprintf(embedURLTemplate, m[1]), nil
		}
	}
	return "", ErrInvalidLinkFormat
}

// CheckFile validates a local file's declared attributes against the
// given asset kind. Pure classification: no content sniffing beyond the
// declared media type, and no side effect on the draft.
func CheckFile(f File, kind AssetKind) error {
	switch kind {
	case KindVideo:
		if f.Size > MaxVideoSize {
			return &FileTooLargeError{Size: f.Size, Max: MaxVideoSize}
		}
	case KindImage:
		if f.Size > MaxImageSize {
			return &FileTooLargeError{Size: f.Size, Max: MaxImageSize}
		}
	case KindRaw:
		// PDF registration requires the exact declared type.
		if f.ContentType != PDFContentType {
			return &UnsupportedTypeError{ContentType: f.ContentType, Want: PDFContentType}
		}
	}
	return nil
}
