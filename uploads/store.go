// Package uploads stores admin image uploads on local disk and keeps daily
// copies of the upload tree.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

const (
	PublicPrefix = "/uploads"
	MaxImageSize = 5 << 20
)

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

type Store struct {
	root string
	now  func() time.Time
}

func NewStore(root string) *Store { return &Store{root: root, now: time.Now} }

func (s *Store) Root() string { return s.root }

// Save writes fh under subdir as <unixnano>_<name><ext> and returns the
// public URL path.
func (s *Store) Save(fh *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", models.NewValidationError("Only image files are allowed", models.FieldError{Field: "image", Message: "unsupported file type " + ext})
	}
	if fh.Size > MaxImageSize {
		return "", models.NewValidationError("Image is too large", models.FieldError{Field: "image", Message: "must be at most 5MB"})
	}

	base := unsafeChars.ReplaceAllString(strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename)), "_")
	name := fmt.Sprintf("%d_%s%s", s.now().UnixNano(), base, ext)
	subdir = unsafeChars.ReplaceAllString(subdir, "")

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", errors.Wrap(err, "create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "write upload")
	}
	return path.Join(PublicPrefix, subdir, name), nil
}
