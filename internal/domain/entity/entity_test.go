package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMatchesSentinels(t *testing.T) {
	tests := []struct {
		kind     ValidationKind
		sentinel error
	}{
		{ValidationFileTooLarge, ErrFileTooLarge},
		{ValidationUnsupportedType, ErrUnsupportedType},
		{ValidationEmptyField, ErrEmptyField},
		{ValidationInvalidURL, ErrInvalidURL},
		{ValidationMissingInput, ErrMissingInput},
	}

	for _, tt := range tests {
		err := error(NewValidationError(tt.kind, "f", "T", "D"))
		assert.ErrorIs(t, err, tt.sentinel, tt.kind)
		assert.NotErrorIs(t, err, ErrSimulatedFailure)
	}
}

func TestValidationErrorNotification(t *testing.T) {
	wrapped := errors.Join(errors.New("ctx"), NewValidationError(ValidationEmptyField, "prompt", "Prompt Required", "Say something"))

	ve, ok := AsValidation(wrapped)
	require.True(t, ok)

	n := ve.Notification()
	assert.Equal(t, "Prompt Required", n.Title)
	assert.Equal(t, "Say something", n.Description)
	assert.True(t, n.IsDestructive())
}

func TestSimulatedFailureUnwraps(t *testing.T) {
	err := &SimulatedFailure{Operation: "process", Reason: "injected"}
	assert.ErrorIs(t, err, ErrSimulatedFailure)
	assert.Contains(t, err.Error(), "injected")
}

func TestUploadTaskLifecycle(t *testing.T) {
	u := NewUploadTask()
	assert.Equal(t, UploadStateIdle, u.State)

	u.MarkValidating(FileRef{Name: "clip.MP4", SizeBytes: 10, MimeType: "video/mp4"})
	assert.Equal(t, UploadStateValidating, u.State)
	assert.Equal(t, SourceFile, u.Source)

	u.MarkSelected()
	assert.True(t, u.HasSelection())

	u.MarkUploading()
	u.SetProgress(45)
	assert.Equal(t, 45, u.Progress)

	u.MarkComplete("demo-1")
	assert.True(t, u.IsComplete())
	assert.Equal(t, 100, u.Progress)
	assert.Equal(t, UploadStateComplete, u.LastOutcome)
}

func TestUploadTaskReject(t *testing.T) {
	u := NewUploadTask()
	u.MarkValidating(FileRef{Name: "huge.mp4", SizeBytes: 1 << 40})
	u.Reject()

	assert.Equal(t, UploadStateIdle, u.State)
	assert.Equal(t, UploadStateRejected, u.LastOutcome)
	assert.Empty(t, u.Reference)
	assert.False(t, u.HasSelection())
}

func TestFileRefExt(t *testing.T) {
	assert.Equal(t, ".mp4", FileRef{Name: "Holiday.MP4"}.Ext())
	assert.Equal(t, "", FileRef{Name: "noext"}.Ext())
}

func TestProcessingJobLifecycle(t *testing.T) {
	j := NewProcessingJob()
	opts := OptionSet{"prompt": "  goals  "}
	j.MarkProcessing("demo-1", opts)
	opts["prompt"] = "mutated"

	assert.True(t, j.IsActive())
	assert.Equal(t, "goals", j.Options.Value("prompt"))

	j.MarkDone("job-1")
	assert.Equal(t, JobStateDone, j.State)
	require.NotNil(t, j.CompletedAt)

	j.Reset()
	assert.Equal(t, JobStateIdle, j.State)
	assert.Empty(t, j.JobID)
}

func TestClipDisplayTitle(t *testing.T) {
	assert.Equal(t, "viral", Clip{ViralTitle: "viral", Title: "plain"}.DisplayTitle())
	assert.Equal(t, "plain", Clip{Title: "plain"}.DisplayTitle())
	assert.Equal(t, "arena", Clip{SearchTerm: "arena"}.DisplayTitle())
}

func TestProjectCloneIsDeep(t *testing.T) {
	p := Project{
		ID:     "1",
		Status: ProjectStatusCompleted,
		Clips: []Clip{{
			Path:       "a.mp4",
			Highlights: []string{"x"},
			Segments:   []Segment{{Content: "s", Highlights: []string{"y"}}},
		}},
	}
	c := p.Clone()
	c.Clips[0].Highlights[0] = "changed"
	c.Clips[0].Segments[0].Highlights[0] = "changed"

	assert.Equal(t, "x", p.Clips[0].Highlights[0])
	assert.Equal(t, "y", p.Clips[0].Segments[0].Highlights[0])
	assert.True(t, p.Selectable())
}

func TestParsePlanType(t *testing.T) {
	p, err := ParsePlanType(" pro ")
	require.NoError(t, err)
	assert.Equal(t, PlanPro, p)

	_, err = ParsePlanType("PLATINUM")
	assert.ErrorIs(t, err, ErrUnknownPlanType)
}

func TestUserSettingsNextReset(t *testing.T) {
	reset := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	update := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	s := UserSettings{LastCreditReset: reset, LastPlanUpdate: update}
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), s.NextReset())

	s.LastPlanUpdate = time.Time{}
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), s.NextReset())
}
