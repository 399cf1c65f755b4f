package socialurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		valid    bool
		platform Platform
		id       string
	}{
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true, PlatformYouTube, "dQw4w9WgXcQ"},
		{"youtu.be", "https://youtu.be/dQw4w9WgXcQ", true, PlatformYouTube, "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/embed/dQw4w9WgXcQ", true, PlatformYouTube, "dQw4w9WgXcQ"},
		{"shorts", "https://youtube.com/shorts/abc12345678", true, PlatformYouTubeShorts, "abc12345678"},
		{"short id", "https://youtube.com/watch?v=abc", true, PlatformYouTube, ""},
		{"instagram reel", "https://www.instagram.com/reel/C1a2B3c4D5e/?igsh=x", true, PlatformInstagram, "C1a2B3c4D5e"},
		{"instagram post", "instagram.com/p/XYZ", true, PlatformInstagram, "XYZ"},
		{"tiktok", "https://www.tiktok.com/@creator/video/7234567890123456789", true, PlatformTikTok, "7234567890123456789"},
		{"tiktok profile", "https://www.tiktok.com/@creator", false, PlatformNone, ""},
		{"example", "https://example.com", false, PlatformNone, ""},
		{"youtube root", "https://youtube.com", false, PlatformNone, ""},
		{"empty", "", false, PlatformNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.url)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.platform, got.Platform)
			assert.Equal(t, tt.id, got.VideoID)
		})
	}
}

func TestValidateYouTube(t *testing.T) {
	assert.True(t, ValidateYouTube("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.True(t, ValidateYouTube("http://youtu.be/x"))
	assert.False(t, ValidateYouTube("https://vimeo.com/123"))
	assert.False(t, ValidateYouTube("https://instagram.com/reel/abc"))
}

func TestVideoIDUnknownPlatform(t *testing.T) {
	assert.Empty(t, VideoID("https://youtu.be/dQw4w9WgXcQ", PlatformNone))
}
