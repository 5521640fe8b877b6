package imagegen

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MIMESource selects how the outbound payload's image MIME type is chosen.
// The historical behaviour infers it from the filename extension even when the
// upload declared a content type; both behaviours stay configurable.
type MIMESource string

const (
	// MIMEFromExtension maps ".png" to image/png and everything else to
	// image/jpeg, ignoring the declared upload type.
	MIMEFromExtension MIMESource = "extension"
	// MIMEFromUpload trusts the content type declared during upload,
	// falling back to the extension when none was sent.
	MIMEFromUpload MIMESource = "declared"
)

// ParseMIMESource validates a configuration string.
func ParseMIMESource(s string) (MIMESource, error) {
	switch MIMESource(strings.ToLower(strings.TrimSpace(s))) {
	case MIMEFromExtension, "":
		return MIMEFromExtension, nil
	case MIMEFromUpload:
		return MIMEFromUpload, nil
	default:
		return "", fmt.Errorf("imagegen: unknown mime source %q", s)
	}
}

// Detect returns the MIME type to advertise for img under this strategy.
func (s MIMESource) Detect(img SourceImage) string {
	if s == MIMEFromUpload && strings.TrimSpace(img.MIME) != "" {
		return strings.TrimSpace(img.MIME)
	}
	name := img.OriginalName
	if name == "" {
		name = img.Path
	}
	if strings.EqualFold(filepath.Ext(name), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
