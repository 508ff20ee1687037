package image_store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickerme_bot/clock"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

func TestSanitizePrompt(t *testing.T) {
	assert.Equal(t, "a red fox", SanitizePrompt("a red fox!", 50))
	assert.Equal(t, "cats-and_dogs", SanitizePrompt("cats-and_dogs???", 50))
	assert.Equal(t, "trailing", SanitizePrompt("trailing   ", 50))
	assert.Equal(t, "  leading", SanitizePrompt("  leading", 50))
	assert.Equal(t, "", SanitizePrompt("!!!", 50))
	assert.Equal(t, "café über", SanitizePrompt("café, über.", 50))
	assert.Equal(t, "x²  ½ cup", SanitizePrompt("x² + ½ cup", 50))
	assert.Equal(t, "abcde", SanitizePrompt("abcdefgh", 5))
}

func TestSanitizePromptTruncatesAfterTrim(t *testing.T) {
	prompt := strings.Repeat("a", 49) + " bcd"

	assert.Equal(t, strings.Repeat("a", 49)+" ", SanitizePrompt(prompt, 50))
}

func TestFilename(t *testing.T) {
	name := Filename(fixedNow, "1234", "a red fox, photographic")

	assert.Equal(t, "20240309_140507_1234_a red fox photographic.png", name)
}

func TestDownloadFilename(t *testing.T) {
	assert.Equal(t, "a red fox.png", DownloadFilename("a red fox"))
	assert.Equal(t, generatedLong(), DownloadFilename(strings.Repeat("x", 40)))
	assert.Equal(t, "generated_image.png", DownloadFilename("???"))
}

func generatedLong() string {
	return strings.Repeat("x", 30) + ".png"
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")

	store, err := New(Config{Dir: dir, Clock: clock.NewFixedClock(fixedNow)})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	path, err := store.Save([]byte("ABC"), "a red fox", "42")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20240309_140507_42_a red fox.png"), path)

	data, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ABC"), data)
}

func TestSaveSameSecondKeepsBothImages(t *testing.T) {
	dir := t.TempDir()

	store, err := New(Config{Dir: dir, Clock: clock.NewFixedClock(fixedNow)})
	require.NoError(t, err)

	first, err := store.Save([]byte("FIRST"), "a red fox", "42")
	require.NoError(t, err)

	second, err := store.Save([]byte("SECOND"), "a red fox", "42")
	require.NoError(t, err)

	third, err := store.Save([]byte("THIRD"), "a red fox", "42")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "20240309_140507_42_a red fox.png"), first)
	assert.Equal(t, filepath.Join(dir, "20240309_140507_42_a red fox_1.png"), second)
	assert.Equal(t, filepath.Join(dir, "20240309_140507_42_a red fox_2.png"), third)

	for path, want := range map[string]string{first: "FIRST", second: "SECOND", third: "THIRD"} {
		data, err := store.Load(path)
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestSaveEmptyData(t *testing.T) {
	store, err := New(Config{Dir: t.TempDir()})
	require.NoError(t, err)

	_, err = store.Save(nil, "p", "1")
	assert.Error(t, err)
}

func TestSaveWriteFailure(t *testing.T) {
	dir := t.TempDir()

	store, err := New(Config{Dir: dir, Clock: clock.NewFixedClock(fixedNow)})
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))

	_, err = store.Save([]byte("ABC"), "p", "1")

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadMissing(t *testing.T) {
	store, err := New(Config{Dir: t.TempDir()})
	require.NoError(t, err)

	_, err = store.Load(filepath.Join(t.TempDir(), "nope.png"))

	var writeErr *WriteError
	assert.True(t, errors.As(err, &writeErr))
}
