package entity

import (
	"path/filepath"
	"strings"
	"time"
)

type UploadState string

const (
	UploadStateIdle       UploadState = "IDLE"
	UploadStateValidating UploadState = "VALIDATING"
	UploadStateUploading  UploadState = "UPLOADING"
	UploadStateComplete   UploadState = "COMPLETE"
	UploadStateRejected   UploadState = "REJECTED"
)

type SourceKind string

const (
	SourceFile SourceKind = "FILE"
	SourceURL  SourceKind = "URL"
)

// FileRef is what the drop zone hands over: metadata only, never content.
type FileRef struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size"`
	MimeType  string `json:"mime_type"`
}

// Ext returns the lower-cased extension including the dot.
func (f FileRef) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

type UploadTask struct {
	Source      SourceKind  `json:"source,omitempty"`
	Reference   string      `json:"reference,omitempty"`
	SizeBytes   int64       `json:"size,omitempty"`
	MimeType    string      `json:"mime_type,omitempty"`
	Platform    string      `json:"platform,omitempty"`
	PlatformID  string      `json:"platform_id,omitempty"`
	Progress    int         `json:"progress"`
	State       UploadState `json:"state"`
	LastOutcome UploadState `json:"last_outcome,omitempty"`
	VideoID     string      `json:"video_id,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func NewUploadTask() *UploadTask {
	return &UploadTask{State: UploadStateIdle, UpdatedAt: time.Now().UTC()}
}

func (u *UploadTask) MarkValidating(f FileRef) {
	u.Source = SourceFile
	u.Reference = f.Name
	u.SizeBytes = f.SizeBytes
	u.MimeType = f.MimeType
	u.State = UploadStateValidating
	u.UpdatedAt = time.Now().UTC()
}

func (u *UploadTask) MarkValidatingURL(url string) {
	u.Source = SourceURL
	u.Reference = url
	u.State = UploadStateValidating
	u.UpdatedAt = time.Now().UTC()
}

// MarkSelected keeps an accepted file in state without starting the upload.
func (u *UploadTask) MarkSelected() {
	u.State = UploadStateIdle
	u.Progress = 0
	u.UpdatedAt = time.Now().UTC()
}

func (u *UploadTask) MarkUploading() {
	u.State = UploadStateUploading
	u.Progress = 0
	u.UpdatedAt = time.Now().UTC()
}

func (u *UploadTask) SetProgress(p int) {
	u.Progress = p
	u.UpdatedAt = time.Now().UTC()
}

func (u *UploadTask) MarkComplete(videoID string) {
	u.State = UploadStateComplete
	u.LastOutcome = UploadStateComplete
	u.Progress = 100
	u.VideoID = videoID
	u.UpdatedAt = time.Now().UTC()
}

// Reject drops the offending input and returns the task to IDLE.
func (u *UploadTask) Reject() {
	u.Reset()
	u.LastOutcome = UploadStateRejected
}

func (u *UploadTask) Reset() {
	*u = UploadTask{State: UploadStateIdle, LastOutcome: u.LastOutcome, UpdatedAt: time.Now().UTC()}
}

// HasSelection reports whether a file or URL is held but not yet uploaded.
func (u *UploadTask) HasSelection() bool {
	return u.Reference != "" && u.State == UploadStateIdle
}

func (u *UploadTask) IsComplete() bool {
	return u.State == UploadStateComplete && u.VideoID != ""
}
