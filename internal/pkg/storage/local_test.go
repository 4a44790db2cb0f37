package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := s.Save(ctx, strings.NewReader("Date,Type,Time"), "imports/A1B2C3/logs.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "imports/A1B2C3/logs.xlsx", key)

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "Date,Type,Time", string(body))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))

	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), strings.NewReader("x"), "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestImportArchiveKey(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "imports/A1B2C3/20240102T030405Z_my_logs.xlsx", ImportArchiveKey("A1B2C3", "my logs.xlsx", at))
	assert.Equal(t, "imports/A1B2C3/20240102T030405Z_passwd", ImportArchiveKey("A1B2C3", "../../passwd", at))
	assert.Equal(t, "imports/A1B2C3/20240102T030405Z_logs", ImportArchiveKey("A1B2C3", "", at))
}
