package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	stored, err := s.Upload(ctx, strings.NewReader("proof"), "evidence/bukti-20-1-proof.pdf")
	require.NoError(t, err)
	assert.Equal(t, "evidence/bukti-20-1-proof.pdf", stored)

	exists, err := s.Exists(ctx, stored)
	require.NoError(t, err)
	assert.True(t, exists)

	f, err := s.Download(ctx, stored)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "proof", string(data))

	url, err := s.GetURL(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/evidence/bukti-20-1-proof.pdf", url)

	require.NoError(t, s.Delete(ctx, stored))
	exists, err = s.Exists(ctx, stored)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, s.Delete(ctx, stored))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Upload(ctx, strings.NewReader("x"), "../../etc/passwd")
	assert.Error(t, err)
}
