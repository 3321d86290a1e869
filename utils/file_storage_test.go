package utils

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalFileStorageLifecycle(t *testing.T) {
	storage := NewLocalFileStorage(t.TempDir())
	key := "photos/app-1/applicant.jpg"

	_, err := storage.UploadFileFromReader(strings.NewReader("jpeg-bytes"), key)
	require.NoError(t, err)

	exists, err := storage.FileExists(key)
	require.NoError(t, err)
	require.True(t, exists)

	reader, err := storage.DownloadFile(key)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	require.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, storage.DeleteFile(key))
	exists, err = storage.FileExists(key)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLocalFileStorageMissingFile(t *testing.T) {
	storage := NewLocalFileStorage(t.TempDir())

	exists, err := storage.FileExists("nope/missing.jpg")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = storage.DownloadFile("nope/missing.jpg")
	require.Error(t, err)
}
