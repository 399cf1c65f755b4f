package entity

import (
	"strings"
	"time"
)

type JobState string

const (
	JobStateIdle       JobState = "IDLE"
	JobStateProcessing JobState = "PROCESSING"
	JobStateDone       JobState = "DONE"
	JobStateFailed     JobState = "FAILED"
)

// OptionSet holds the page-specific choices (format, layout, caption style, voice, prompt...).
type OptionSet map[string]string

// Value returns the trimmed option value.
func (o OptionSet) Value(key string) string {
	return strings.TrimSpace(o[key])
}

func (o OptionSet) Clone() OptionSet {
	out := make(OptionSet, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

type ProcessingJob struct {
	InputReference string     `json:"input_reference,omitempty"`
	Options        OptionSet  `json:"options,omitempty"`
	JobID          string     `json:"job_id,omitempty"`
	State          JobState   `json:"state"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

func NewProcessingJob() *ProcessingJob {
	now := time.Now().UTC()
	return &ProcessingJob{State: JobStateIdle, CreatedAt: now, UpdatedAt: now}
}

func (j *ProcessingJob) MarkProcessing(input string, opts OptionSet) {
	j.InputReference = input
	j.Options = opts.Clone()
	j.State = JobStateProcessing
	j.ErrorMessage = ""
	j.CompletedAt = nil
	j.UpdatedAt = time.Now().UTC()
}

func (j *ProcessingJob) MarkDone(jobID string) {
	now := time.Now().UTC()
	j.JobID = jobID
	j.State = JobStateDone
	j.UpdatedAt = now
	j.CompletedAt = &now
}

func (j *ProcessingJob) MarkFailed(errMsg string) {
	j.State = JobStateFailed
	j.ErrorMessage = errMsg
	j.UpdatedAt = time.Now().UTC()
}

func (j *ProcessingJob) Reset() {
	now := time.Now().UTC()
	*j = ProcessingJob{State: JobStateIdle, CreatedAt: now, UpdatedAt: now}
}

func (j *ProcessingJob) IsActive() bool {
	return j.State == JobStateProcessing
}
