package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, _ = part.Write([]byte(content))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestStore_Save(t *testing.T) {
	store := upload.NewStore(t.TempDir())

	t.Run("allowed extension", func(t *testing.T) {
		fh := fileHeader(t, "resume", "CV.PDF", "pdf-bytes")
		p, err := store.Save(fh, upload.DirResumes, upload.DocumentExts)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(p, "uploads/resumes/"))
		assert.True(t, strings.HasSuffix(p, ".pdf"))

		full, err := store.Resolve(p)
		require.NoError(t, err)
		data, err := os.ReadFile(full)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(data))
	})

	t.Run("rejected extension", func(t *testing.T) {
		fh := fileHeader(t, "photo", "avatar.gif", "gif")
		_, err := store.Save(fh, upload.DirPhotos, upload.ImageExts)
		assert.ErrorIs(t, err, upload.ErrExtensionNotAllowed)
	})

	t.Run("nil header", func(t *testing.T) {
		_, err := store.Save(nil, upload.DirPhotos, upload.ImageExts)
		assert.Error(t, err)
	})
}

func TestStore_WriteBytesAndResolve(t *testing.T) {
	store := upload.NewStore(t.TempDir())

	p1, err := store.WriteBytes(upload.DirLetters, ".pdf", []byte("a"))
	require.NoError(t, err)
	p2, err := store.WriteBytes(upload.DirLetters, ".pdf", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)

	_, err = store.Resolve("uploads/letters/missing.pdf")
	assert.ErrorIs(t, err, upload.ErrFileNotFound)

	_, err = store.Resolve("uploads")
	assert.ErrorIs(t, err, upload.ErrInvalidPath)

	// traversal is clamped to the root
	_, err = store.Resolve("uploads/../../etc/passwd")
	assert.ErrorIs(t, err, upload.ErrFileNotFound)
}
