// Package socialurl recognises pasted video links and extracts the
// platform-specific video identifier.
package socialurl

import (
	"regexp"
	"strings"
)

type Platform string

const (
	PlatformNone          Platform = ""
	PlatformYouTube       Platform = "youtube"
	PlatformYouTubeShorts Platform = "youtube_shorts"
	PlatformInstagram     Platform = "instagram"
	PlatformTikTok        Platform = "tiktok"
)

var (
	youtubePattern   = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)
	instagramPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/(?:p|reel|tv)/([^/?#&]+).*`)
	tiktokPattern    = regexp.MustCompile(`^(?:https?://)?(?:www\.)?tiktok\.com/@[^/]+/video/(\d+).*`)

	youtubeIDPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=|shorts/)([^#&?]*).*`)
)

const youtubeIDLength = 11

type Result struct {
	Valid    bool     `json:"valid"`
	Platform Platform `json:"platform"`
	VideoID  string   `json:"video_id,omitempty"`
}

// ValidateYouTube accepts youtube.com and youtu.be links with a path.
func ValidateYouTube(url string) bool {
	return youtubePattern.MatchString(url)
}

// Validate detects the platform of a social video link. Shorts are reported
// separately from regular YouTube videos.
func Validate(url string) Result {
	url = strings.TrimSpace(url)

	var platform Platform
	switch {
	case youtubePattern.MatchString(url):
		platform = PlatformYouTube
		if strings.Contains(url, "youtube.com/shorts/") {
			platform = PlatformYouTubeShorts
		}
	case instagramPattern.MatchString(url):
		platform = PlatformInstagram
	case tiktokPattern.MatchString(url):
		platform = PlatformTikTok
	default:
		return Result{Valid: false, Platform: PlatformNone}
	}

	return Result{Valid: true, Platform: platform, VideoID: VideoID(url, platform)}
}

// VideoID extracts the platform id; YouTube ids must be exactly 11 characters.
func VideoID(url string, platform Platform) string {
	switch platform {
	case PlatformYouTube, PlatformYouTubeShorts:
		m := youtubeIDPattern.FindStringSubmatch(url)
		if m != nil && len(m[2]) == youtubeIDLength {
			return m[2]
		}
	case PlatformInstagram:
		if m := instagramPattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	case PlatformTikTok:
		if m := tiktokPattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}
