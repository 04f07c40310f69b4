// Package avatar screens image files before they are attached to a form.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/goliatone/go-ecollection/pkg/model"
)

// DefaultMaxBytes is the largest accepted avatar, in bytes.
const DefaultMaxBytes int64 = 1_000_000

// DefaultTypes lists the accepted media types.
var DefaultTypes = []string{"image/png", "image/jpeg", "image/gif"}

// Kind classifies an intake rejection.
type Kind string

const (
	KindTooLarge        Kind = "avatar_too_large"
	KindUnsupportedType Kind = "avatar_unsupported_type"
)

// Error is a user-facing intake rejection.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches intake errors by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && e.Kind == t.Kind
}

var (
	// ErrTooLarge matches any size rejection.
	ErrTooLarge = &Error{Kind: KindTooLarge}
	// ErrUnsupportedType matches any media type rejection.
	ErrUnsupportedType = &Error{Kind: KindUnsupportedType}
	// ErrNoFile signals the picker was dismissed without a selection.
	ErrNoFile = errors.New("avatar: no file selected")
)

// Intake checks size and media type of selected files.
type Intake struct {
	MaxBytes int64
	Types    []string
}

// NewIntake returns an Intake with the default limits.
func NewIntake() Intake {
	return Intake{MaxBytes: DefaultMaxBytes, Types: DefaultTypes}
}

func (in Intake) maxBytes() int64 {
	if in.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return in.MaxBytes
}

func (in Intake) types() []string {
	if len(in.Types) == 0 {
		return DefaultTypes
	}
	return in.Types
}

// Accept reads a selected file and returns an avatar handle when it passes
// the checks. declaredType is the type reported by the picker, used only when
// content sniffing is inconclusive.
func (in Intake) Accept(filename, declaredType string, r io.Reader) (*model.Avatar, error) {
	if r == nil || strings.TrimSpace(filename) == "" {
		return nil, ErrNoFile
	}

	limit := in.maxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("avatar: read %s: %w", filename, err)
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}
	if int64(len(data)) > limit {
		return nil, in.TooLarge()
	}

	mediaType := in.detect(data, declaredType)
	if !in.allowed(mediaType) {
		return nil, &Error{
			Kind:    KindUnsupportedType,
			Message: fmt.Sprintf("'%s' is not a supported format", mediaType),
		}
	}

	return &model.Avatar{
		Filename:  filepath.Base(filename),
		MediaType: mediaType,
		Size:      int64(len(data)),
		Data:      data,
	}, nil
}

// Open reads and screens a file from disk. An empty path is a dismissed
// picker and yields ErrNoFile.
func (in Intake) Open(path string) (*model.Avatar, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrNoFile
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("avatar: stat %s: %w", path, err)
	}
	if info.Size() > in.maxBytes() {
		return nil, in.TooLarge()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("avatar: open %s: %w", path, err)
	}
	defer f.Close()
	return in.Accept(path, "", f)
}

// Preview returns a reader over the avatar content for live previews.
func Preview(a *model.Avatar) (io.Reader, string, bool) {
	if a == nil || len(a.Data) == 0 {
		return nil, "", false
	}
	return bytes.NewReader(a.Data), a.MediaType, true
}

// TooLarge is the rejection for a file over the size limit.
func (in Intake) TooLarge() *Error {
	return &Error{
		Kind: KindTooLarge,
		Message: fmt.Sprintf(
			"Image too large, please choose an image that is not greater than %s",
			humanize.Bytes(uint64(in.maxBytes())),
		),
	}
}

func (in Intake) detect(data []byte, declared string) string {
	detected := mimetype.Detect(data)
	if detected.Is("application/octet-stream") && strings.TrimSpace(declared) != "" {
		return strings.TrimSpace(declared)
	}
	mediaType := detected.String()
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	return strings.TrimSpace(mediaType)
}

func (in Intake) allowed(mediaType string) bool {
	for _, t := range in.types() {
		if strings.EqualFold(t, mediaType) {
			return true
		}
	}
	return false
}
