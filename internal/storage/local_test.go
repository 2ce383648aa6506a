package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/files",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestLocalStorage_PutGetDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	key := "exports/emp-1/report.csv"
	err := s.Put(ctx, key, strings.NewReader("employee_id,score\nemp-1,95\n"), PutOptions{})
	require.NoError(t, err)

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, info, err := s.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, rc)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "emp-1,95")
	assert.Equal(t, "text/csv; charset=utf-8", info.ContentType)

	require.NoError(t, s.Delete(ctx, key))
	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_PutNoOverwrite(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	key := "exports/emp-1/report.html"
	require.NoError(t, s.Put(ctx, key, strings.NewReader("<html></html>"), PutOptions{}))

	err := s.Put(ctx, key, strings.NewReader("other"), PutOptions{})
	assert.True(t, IsKeyExists(err))

	err = s.Put(ctx, key, strings.NewReader("other"), PutOptions{Overwrite: true})
	assert.NoError(t, err)
}

func TestLocalStorage_MaxSize(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Put(ctx, "exports/e/big.csv", strings.NewReader("0123456789"), PutOptions{MaxSize: 5})
	assert.True(t, IsTooLarge(err))
}

func TestLocalStorage_PathTraversal(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Put(ctx, "../escape.csv", strings.NewReader("x"), PutOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, _, err = s.Get(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", DetectContentType("", "exports/a/b.csv"))
	assert.Equal(t, "text/html; charset=utf-8", DetectContentType("", "b.HTML"))
	assert.Equal(t, "application/octet-stream", DetectContentType("", "b.bin"))
	assert.Equal(t, "text/plain", DetectContentType("text/plain", "b.csv"))
}
