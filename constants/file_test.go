package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"5MB", 5 * 1024 * 1024},
		{"2KB", 2 * 1024},
		{"1GB", 1024 * 1024 * 1024},
		{"512B", 512},
		{"1024", 1024},
		{" 10mb ", 10 * 1024 * 1024},
		{"1.5KB", 1536},
	}
	for _, tt := range tests {
		got, err := ParseByteSize(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseByteSize_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-5MB", "MB", "5TBB"} {
		_, err := ParseByteSize(in)
		assert.Error(t, err, in)
	}
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "jpg", NormalizeExt(".JPG"))
	assert.Equal(t, "png", NormalizeExt("png"))
	assert.Equal(t, "", NormalizeExt("."))
}

func TestParseExtensions(t *testing.T) {
	exts := ParseExtensions("jpg, PNG ,.webp")
	assert.Len(t, exts, 3)
	assert.Contains(t, exts, "jpg")
	assert.Contains(t, exts, "png")
	assert.Contains(t, exts, "webp")
}

func TestParseExtensions_EmptyFallsBack(t *testing.T) {
	assert.Equal(t, AllowedExtensions, ParseExtensions(""))
	assert.Equal(t, AllowedExtensions, ParseExtensions(" , , "))
}

func TestExtensionList(t *testing.T) {
	list := ExtensionList()
	require.Len(t, list, len(AllowedExtensions))
	assert.Equal(t, []string{"bmp", "jpeg", "jpg", "png", "webp"}, list)
}
