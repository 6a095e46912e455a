package storage

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"strings"
	"testing"
)

func TestCleanKey(t *testing.T) {
	valid := map[string]string{
		"covers/a.jpg":        "covers/a.jpg",
		"/profile_pics/b.png": "profile_pics/b.png",
	}
	for in, want := range valid {
		got, err := CleanKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "/", "../secret", "covers/../../x", `covers\a.jpg`, "covers//a.jpg"} {
		_, err := CleanKey(in)
		assert.ErrorIs(t, err, ErrInvalidPath, in)
	}
}

func TestLocal_SaveAndOpen(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "covers/dune.jpg", strings.NewReader("first")))
	require.NoError(t, s.Save(ctx, "covers/dune.jpg", bytes.NewBufferString("second")))

	rc, err := s.Open(ctx, "covers/dune.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocal_Errors(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Open(ctx, "covers/missing.jpg")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Open(ctx, "../outside")
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.ErrorIs(t, s.Save(ctx, "../outside", strings.NewReader("x")), ErrInvalidPath)
}

func TestLocal_Delete(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "profile_pics/a.png", strings.NewReader("x")))
	require.NoError(t, s.Delete(ctx, "profile_pics/a.png"))

	_, err = s.Open(ctx, "profile_pics/a.png")
	assert.ErrorIs(t, err, ErrNotFound)

	// 重复删除
	assert.NoError(t, s.Delete(ctx, "profile_pics/a.png"))
	assert.ErrorIs(t, s.Delete(ctx, "../outside"), ErrInvalidPath)
}
