package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/socialurl"
)

// FlowKind names one of the creation pages.
type FlowKind string

const (
	FlowAddBroll      FlowKind = "ADD_BROLL"
	FlowClipAnyMoment FlowKind = "CLIP_ANY_MOMENT"
	FlowLongToLong    FlowKind = "LONG_TO_LONG"
	FlowLongToShort   FlowKind = "LONG_TO_SHORT"
	FlowIdeasToVideo  FlowKind = "IDEAS_TO_VIDEO"
	FlowThumbnail     FlowKind = "THUMBNAIL"
	FlowGenVoice      FlowKind = "GEN_VOICE"
)

const (
	RouteMyProjects = "/MyProjects"

	MB int64 = 1024 * 1024
	GB int64 = 1024 * MB
)

type URLKind int

const (
	URLNone URLKind = iota
	URLYouTube
	URLSocial
)

// Copy is the title and description of a toast.
type Copy struct {
	Title       string
	Description string
}

func (c Copy) info() entity.Notification {
	return entity.Info(c.Title, c.Description)
}

func (c Copy) destructive() entity.Notification {
	return entity.Destructive(c.Title, c.Description)
}

type UploadPolicy struct {
	MaxSizeBytes int64
	AllowedMIME  []string
	AllowedExt   []string
	URLKind      URLKind

	// VideoPrefix requires a video/* MIME type.
	VideoPrefix bool

	// EitherMatch accepts a file when its MIME type or its extension is
	// allowed, instead of requiring both.
	EitherMatch bool

	// Ticking uploads fake a progress bar; the others are a plain delay.
	Ticking bool

	TooLarge    Copy
	Unsupported Copy
	Uploaded    Copy
	Failed      Copy
	URLRequired Copy
	URLInvalid  Copy
	URLAdded    Copy
	URLFailed   Copy
}

// RequiredField is an option that must be non-blank before a job may start.
type RequiredField struct {
	Key   string
	Empty Copy
}

type Flow struct {
	Kind     FlowKind
	Upload   *UploadPolicy
	Required []RequiredField
	Defaults entity.OptionSet
	// Choices restricts option values; keys absent here accept anything.
	Choices  map[string][]string
	Started  Copy
	Failed   Copy
	Navigate string
	Pipeline entity.PipelineType
}

var missingVideo = Copy{"No video selected", "Please upload a video or paste a link first"}

var processingFailed = Copy{"Processing failed", "Failed to start processing"}

var flows = map[FlowKind]Flow{
	FlowAddBroll: {
		Kind: FlowAddBroll,
		Upload: &UploadPolicy{
			MaxSizeBytes: 200 * MB,
			AllowedExt:   []string{".mp4", ".mov", ".avi"},
			VideoPrefix:  true,
			EitherMatch:  true,
			TooLarge:     Copy{"File too large", "Please upload a video file smaller than 200MB"},
			Unsupported:  Copy{"Invalid file type", "Allowed types: MP4, MOV, AVI"},
			Uploaded:     Copy{"Upload Complete", "Your video has been uploaded successfully"},
			Failed:       Copy{"Upload Failed", "Failed to upload video"},
		},
		Defaults: entity.OptionSet{"style": "fill", "source": "pexels"},
		Choices:  map[string][]string{"style": {"fill"}, "source": {"pexels", "ai"}},
		Started:  Copy{"Processing Started", "Your video is being processed"},
		Failed:   Copy{"Processing Failed", "Failed to process video"},
		Navigate: RouteMyProjects,
		Pipeline: entity.PipelineBroll,
	},
	FlowClipAnyMoment: {
		Kind: FlowClipAnyMoment,
		Upload: &UploadPolicy{
			MaxSizeBytes: 2 * GB,
			AllowedMIME:  []string{"video/mp4", "video/webm", "video/x-matroska"},
			Ticking:      true,
			TooLarge:     Copy{"File too large", "Maximum file size is 2GB"},
			Unsupported:  Copy{"Invalid file type", "Allowed types: MP4, WEBM, MKV"},
			Uploaded:     Copy{"Upload complete", "Click Process to continue."},
			Failed:       Copy{"Upload failed", "Failed to upload video"},
		},
		Required: []RequiredField{
			{Key: "prompt", Empty: Copy{"Prompt Required", "Please enter what you want to clip from the video"}},
		},
		Defaults: entity.OptionSet{"format": "short", "layout": "fill"},
		Choices:  map[string][]string{"format": {"short", "long"}, "layout": {"fill", "fit"}},
		Started:  Copy{"Processing started", "Your video is being analyzed. You can track the progress in My Projects."},
		Failed:   processingFailed,
		Navigate: RouteMyProjects,
		Pipeline: entity.PipelineClipAnyMoment,
	},
	FlowLongToLong: {
		Kind: FlowLongToLong,
		Upload: &UploadPolicy{
			MaxSizeBytes: 2 * GB,
			AllowedExt:   []string{".mp4", ".webm", ".mkv"},
			VideoPrefix:  true,
			Ticking:      true,
			URLKind:      URLYouTube,
			TooLarge:     Copy{"File too large", "Maximum file size is 2GB"},
			Unsupported:  Copy{"Invalid file type", "Allowed types: MP4, WEBM, MKV"},
			Uploaded:     Copy{"Upload complete", "Click Process to continue."},
			Failed:       Copy{"Upload failed", "An error occurred"},
			URLRequired:  Copy{"URL Required", "Please enter a YouTube URL"},
			URLInvalid:   Copy{"Invalid URL", "Please enter a valid YouTube URL"},
			URLAdded:     Copy{"YouTube video added", "Click Process to continue."},
			URLFailed:    Copy{"Failed to add YouTube video", "An error occurred"},
		},
		Defaults: entity.OptionSet{"include_broll": "false"},
		Choices:  map[string][]string{"include_broll": {"true", "false"}},
		Started:  Copy{"Processing started", "Your video is being processed to find viral moments. You can track the progress in My Projects."},
		Failed:   processingFailed,
		Navigate: RouteMyProjects,
		Pipeline: entity.PipelineLongForm,
	},
	FlowLongToShort: {
		Kind: FlowLongToShort,
		Upload: &UploadPolicy{
			MaxSizeBytes: 2 * GB,
			AllowedExt:   []string{".mp4", ".mov", ".avi", ".mkv"},
			VideoPrefix:  true,
			Ticking:      true,
			URLKind:      URLYouTube,
			TooLarge:     Copy{"File too large", "Maximum file size is 2GB"},
			Unsupported:  Copy{"Invalid file type", "Allowed types: MP4, MOV, AVI, MKV"},
			Uploaded:     Copy{"Upload complete", "Click Process to continue."},
			Failed:       Copy{"Upload failed", "An error occurred"},
			URLRequired:  Copy{"URL Required", "Please enter a YouTube URL"},
			URLInvalid:   Copy{"Invalid URL", "Please enter a valid YouTube URL"},
			URLAdded:     Copy{"YouTube video added", "Click Process to continue."},
			URLFailed:    Copy{"Failed to add YouTube video", "An error occurred"},
		},
		Defaults: entity.OptionSet{"layout": "AUTO", "caption_style": "STYLE1", "caption_language": "auto"},
		Choices: map[string][]string{
			"layout":           {"AUTO", "FILL", "FIT", "FRAME", "GAMIFY"},
			"caption_style":    {"STYLE1", "STYLE2", "STYLE3", "STYLE4"},
			"caption_language": {"auto", "en"},
		},
		Started:  Copy{"Processing started", "Your video is being processed. You can track the progress in My Projects."},
		Failed:   processingFailed,
		Navigate: RouteMyProjects,
		Pipeline: entity.PipelineShortForm,
	},
	FlowIdeasToVideo: {
		Kind: FlowIdeasToVideo,
		Upload: &UploadPolicy{
			MaxSizeBytes: 2 * GB,
			AllowedExt:   []string{".mp4", ".webm", ".mkv"},
			VideoPrefix:  true,
			Ticking:      true,
			URLKind:      URLSocial,
			TooLarge:     Copy{"File too large", "Maximum file size is 2GB"},
			Unsupported:  Copy{"Invalid file type", "Allowed types: MP4, WEBM, MKV"},
			Uploaded:     Copy{"Upload complete", "Click Process to continue."},
			Failed:       Copy{"Upload failed", "An error occurred"},
			URLRequired:  Copy{"URL Required", "Please enter a social media video URL"},
			URLInvalid:   Copy{"Invalid URL", "Supported: YouTube, YouTube Shorts, Instagram, TikTok"},
			URLAdded:     Copy{"Video added", "Click Process to continue."},
			URLFailed:    Copy{"Failed to add video", "An error occurred"},
		},
		Required: []RequiredField{
			{Key: "prompt", Empty: Copy{"Prompt Required", "Please enter what you want to create"}},
		},
		Defaults: entity.OptionSet{"voice": "alloy", "image_model": "flux"},
		Started:  Copy{"Processing started", "Your video is being processed. You can track the progress in My Projects."},
		Failed:   processingFailed,
		Navigate: RouteMyProjects,
		Pipeline: entity.PipelineIdeasToVideo,
	},
	FlowThumbnail: {
		Kind: FlowThumbnail,
		Required: []RequiredField{
			{Key: "prompt", Empty: Copy{"Error", "Please enter a prompt"}},
		},
		Defaults: entity.OptionSet{"mode": ThumbnailModeImages, "style": "cinematic", "aspect_ratio": "16:9", "num_images": "1", "model": "flux", "enhance": "true"},
		Choices: map[string][]string{
			"mode":         {ThumbnailModeImages, ThumbnailModePrompts},
			"aspect_ratio": {"16:9", "9:16", "1:1", "4:3"},
			"num_images":   {"1", "2", "3", "4"},
			"enhance":      {"true", "false"},
		},
		Started: Copy{"Success", "Thumbnail generation started!"},
		Failed:  Copy{"Error", "Failed to start generation"},
	},
	FlowGenVoice: {
		Kind: FlowGenVoice,
		Required: []RequiredField{
			{Key: "text", Empty: Copy{"Text Required", "Please enter the text to speak"}},
		},
		Defaults: entity.OptionSet{"voice": "af_alloy", "speed": "1"},
		Started:  Copy{"Generation started", "Your voice is being generated"},
		Failed:   Copy{"Generation failed", "Failed to generate voice"},
	},
}

const (
	ThumbnailModeImages  = "images"
	ThumbnailModePrompts = "prompts"
)

var (
	promptJobStarted  = Copy{"Success", "Prompt generation started!"}
	promptJobFailed   = Copy{"Error", "Failed to start prompt generation"}
	thumbnailsReady   = Copy{"Success", "Thumbnails generated successfully!"}
	promptsReady      = Copy{"Success", "Generated creative prompts for your thumbnail!"}
	statusCheckFailed = Copy{"Error", "Failed to check job status"}
)

var ErrUnknownFlow = errors.New("unknown flow")

// LookupFlow accepts the flow name in any casing.
func LookupFlow(name string) (Flow, error) {
	f, ok := flows[FlowKind(strings.ToUpper(strings.TrimSpace(name)))]
	if !ok {
		return Flow{}, fmt.Errorf("%q: %w", name, ErrUnknownFlow)
	}
	return f, nil
}

func FlowKinds() []FlowKind {
	kinds := make([]FlowKind, 0, len(flows))
	for k := range flows {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// CheckFile applies the size ceiling, then the type rules.
func (p *UploadPolicy) CheckFile(f entity.FileRef) error {
	if f.SizeBytes > p.MaxSizeBytes {
		return entity.NewValidationError(entity.ValidationFileTooLarge, "file", p.TooLarge.Title, p.TooLarge.Description)
	}
	if !p.acceptsType(f) {
		return entity.NewValidationError(entity.ValidationUnsupportedType, "file", p.Unsupported.Title, p.Unsupported.Description)
	}
	return nil
}

func (p *UploadPolicy) acceptsType(f entity.FileRef) bool {
	mime := strings.ToLower(strings.TrimSpace(f.MimeType))
	mimeOK := (len(p.AllowedMIME) == 0 || contains(p.AllowedMIME, mime)) &&
		(!p.VideoPrefix || strings.HasPrefix(mime, "video/"))
	extOK := len(p.AllowedExt) == 0 || contains(p.AllowedExt, f.Ext())

	if p.EitherMatch {
		return mimeOK || extOK
	}
	return mimeOK && extOK
}

// CheckURL validates a pasted link against the page's platform matcher.
func (p *UploadPolicy) CheckURL(raw string) (socialurl.Result, error) {
	raw = strings.TrimSpace(raw)
	if p.URLKind == URLNone {
		return socialurl.Result{}, entity.NewValidationError(entity.ValidationInvalidURL, "url", "Invalid URL", "This page does not accept links")
	}
	if raw == "" {
		return socialurl.Result{}, entity.NewValidationError(entity.ValidationEmptyField, "url", p.URLRequired.Title, p.URLRequired.Description)
	}

	res := socialurl.Validate(raw)
	if p.URLKind == URLYouTube && !socialurl.ValidateYouTube(raw) {
		res = socialurl.Result{}
	}
	if !res.Valid {
		return res, entity.NewValidationError(entity.ValidationInvalidURL, "url", p.URLInvalid.Title, p.URLInvalid.Description)
	}
	return res, nil
}

// Options merges defaults under the submitted values and checks required
// fields and restricted choices.
func (f Flow) Options(submitted entity.OptionSet) (entity.OptionSet, error) {
	opts := f.Defaults.Clone()
	for k, v := range submitted {
		opts[k] = v
	}

	for _, r := range f.Required {
		if opts.Value(r.Key) == "" {
			return nil, entity.NewValidationError(entity.ValidationEmptyField, r.Key, r.Empty.Title, r.Empty.Description)
		}
	}

	for key, allowed := range f.Choices {
		if v := opts.Value(key); v != "" && !contains(allowed, v) {
			return nil, entity.NewValidationError(entity.ValidationUnsupportedType, key,
				"Invalid option", fmt.Sprintf("%s must be one of: %s", key, strings.Join(allowed, ", ")))
		}
	}
	return opts, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
