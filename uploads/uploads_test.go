package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

func fileHeader(t *testing.T, name string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSave(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	s.now = func() time.Time { return time.Unix(0, 42) }

	url, err := s.Save(fileHeader(t, "summer sale!.PNG", []byte("png")), "banners")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/banners/42_summer_sale_.png", url)

	data, err := os.ReadFile(filepath.Join(root, "banners", "42_summer_sale_.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestSaveRejectsNonImage(t *testing.T) {
	_, err := NewStore(t.TempDir()).Save(fileHeader(t, "run.sh", []byte("#!")), "banners")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNextRun(t *testing.T) {
	loc := time.UTC
	assert.Equal(t, time.Date(2024, 5, 1, 2, 0, 0, 0, loc), nextRun(time.Date(2024, 5, 1, 1, 0, 0, 0, loc), 2, 0))
	assert.Equal(t, time.Date(2024, 5, 2, 2, 0, 0, 0, loc), nextRun(time.Date(2024, 5, 1, 2, 0, 0, 0, loc), 2, 0))
}

func TestRunOnceCopiesAndPrunes(t *testing.T) {
	src, dest := t.TempDir(), t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "banners"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "banners", "a.png"), []byte("a"), 0o644))

	old := filepath.Join(dest, "old")
	require.NoError(t, os.MkdirAll(old, 0o755))
	stale := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))

	b := BackupSchedule{Src: src, Dest: dest, Retention: 4 * 24 * time.Hour}
	out, err := b.RunOnce(time.Now())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "banners", "a.png"))
	assert.NoError(t, err)
	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err))
}
