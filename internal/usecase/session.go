package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/port"
	"github.com/heroxshorts/heroxshorts-studio/internal/fixture"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/metrics"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/notify"
	"github.com/heroxshorts/heroxshorts-studio/internal/simtask"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var _ port.Navigator = (*Session)(nil)

// SessionDeps is shared by every page a registry opens.
type SessionDeps struct {
	Clock     clockwork.Clock
	Timings   Timings
	Fault     simtask.FaultInjector
	Logger    *zap.Logger
	Publisher port.NotificationPublisher
	Sinks     []port.Notifier
}

func (d SessionDeps) withDefaults() SessionDeps {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Timings == (Timings{}) {
		d.Timings = DefaultTimings()
	}
	return d
}

// View is the page as the client renders it.
type View struct {
	ID            string                `json:"id"`
	Flow          FlowKind              `json:"flow"`
	Upload        entity.UploadTask     `json:"upload"`
	Job           entity.ProcessingJob  `json:"job"`
	Busy          bool                  `json:"busy"`
	Notifications []entity.Notification `json:"notifications"`
	Redirect      string                `json:"redirect,omitempty"`
	Thumbnails    []fixture.Thumbnail   `json:"thumbnails,omitempty"`
	Prompts       []string              `json:"prompts,omitempty"`
}

// Session is one opened page. It owns the page's upload and job tasks, and
// closing it releases every timer they hold.
type Session struct {
	id       string
	flow     Flow
	timings  Timings
	logger   *zap.Logger
	recorder *notify.Recorder
	notifier port.Notifier

	ctx    context.Context
	cancel context.CancelFunc

	uploadTask *simtask.Task
	jobTask    *simtask.Task
	statusTask *simtask.Task

	mu         sync.Mutex
	upload     *entity.UploadTask
	job        *entity.ProcessingJob
	chaining   bool
	jobInput   string
	jobOptions entity.OptionSet
	redirect   string
	thumbnails []fixture.Thumbnail
	prompts    []string

	closeOnce sync.Once
}

func NewSession(id string, flow Flow, deps SessionDeps) *Session {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:       id,
		flow:     flow,
		timings:  deps.Timings,
		logger:   deps.Logger.With(zap.String("session_id", id), zap.String("flow", string(flow.Kind))),
		recorder: notify.NewRecorder(),
		ctx:      ctx,
		cancel:   cancel,
		upload:   entity.NewUploadTask(),
		job:      entity.NewProcessingJob(),
	}

	sinks := []port.Notifier{s.recorder, notify.NewLogNotifier(s.logger)}
	if deps.Publisher != nil {
		sinks = append(sinks, notify.NewPublishingNotifier(deps.Publisher, id, string(flow.Kind)))
	}
	sinks = append(sinks, deps.Sinks...)
	s.notifier = notify.NewFanout(deps.Clock.Now, sinks...)

	opts := []simtask.Option{simtask.WithClock(deps.Clock), simtask.WithFault(deps.Fault)}
	s.uploadTask = simtask.New(taskName(flow.Kind, "upload"), opts...)
	s.jobTask = simtask.New(taskName(flow.Kind, "job"), opts...)
	s.statusTask = simtask.New(taskName(flow.Kind, "status"), opts...)
	s.uploadTask.Observe(s.onUpload)
	s.jobTask.Observe(s.onJob)
	s.statusTask.Observe(s.onStatus)

	metrics.ActiveSessions.Inc()
	return s
}

func taskName(kind FlowKind, task string) string {
	return string(kind) + "/" + task
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Flow() Flow {
	return s.flow
}

// SelectFile is the drop: the file is checked and kept, nothing is uploaded.
func (s *Session) SelectFile(ctx context.Context, f entity.FileRef) error {
	policy, err := s.uploadPolicy(ctx)
	if err != nil {
		return err
	}
	if s.uploadTask.Snapshot().State.IsActive() {
		return simtask.ErrBusy
	}

	s.mu.Lock()
	s.upload.MarkValidating(f)
	if err := policy.CheckFile(f); err != nil {
		s.upload.Reject()
		s.mu.Unlock()
		return s.rejectUpload(err)
	}
	s.upload.MarkSelected()
	s.mu.Unlock()

	s.logger.Info("file selected", zap.String("name", f.Name), zap.Int64("size", f.SizeBytes))
	return nil
}

// StartUpload uploads the file picked with SelectFile.
func (s *Session) StartUpload(ctx context.Context) error {
	policy, err := s.uploadPolicy(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	f := entity.FileRef{Name: s.upload.Reference, SizeBytes: s.upload.SizeBytes, MimeType: s.upload.MimeType}
	selected := s.upload.HasSelection() && s.upload.Source == entity.SourceFile
	s.mu.Unlock()
	if !selected {
		return s.raiseValidation(ctx, entity.NewValidationError(entity.ValidationMissingInput, "file", missingVideo.Title, missingVideo.Description))
	}

	return s.startUpload(ctx, policy, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.upload.MarkValidating(f)
		return policy.CheckFile(f)
	})
}

// UploadFile selects and uploads in one step.
func (s *Session) UploadFile(ctx context.Context, f entity.FileRef) error {
	policy, err := s.uploadPolicy(ctx)
	if err != nil {
		return err
	}
	return s.startUpload(ctx, policy, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.upload.MarkValidating(f)
		return policy.CheckFile(f)
	})
}

// SubmitURL adds a pasted video link in place of a file.
func (s *Session) SubmitURL(ctx context.Context, rawURL string) error {
	policy, err := s.uploadPolicy(ctx)
	if err != nil {
		return err
	}
	rawURL = strings.TrimSpace(rawURL)

	ctx, span := otel.Tracer("usecase").Start(ctx, "Session.SubmitURL")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", s.id), attribute.String("url", rawURL))

	err = s.uploadTask.Start(s.ctx, simtask.Delay(s.timings.URLDelay), func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.upload.MarkValidatingURL(rawURL)
		res, err := policy.CheckURL(rawURL)
		if err != nil {
			return err
		}
		s.upload.Platform = string(res.Platform)
		s.upload.PlatformID = res.VideoID
		return nil
	}, newVideoID)
	return s.afterUploadStart(ctx, err)
}

func (s *Session) startUpload(ctx context.Context, policy *UploadPolicy, validate func() error) error {
	ctx, span := otel.Tracer("usecase").Start(ctx, "Session.Upload")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", s.id), attribute.String("flow", string(s.flow.Kind)))

	err := s.uploadTask.Start(s.ctx, s.timings.uploadPlan(policy), validate, newVideoID)
	return s.afterUploadStart(ctx, err)
}

func (s *Session) afterUploadStart(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, simtask.ErrBusy) {
		return err
	}
	s.mu.Lock()
	s.upload.Reject()
	s.mu.Unlock()
	return s.rejectUpload(err)
}

func (s *Session) rejectUpload(err error) error {
	metrics.UploadsTotal.WithLabelValues(string(s.flow.Kind), "rejected").Inc()
	if ve, ok := entity.AsValidation(err); ok {
		s.raise(ve.Notification())
	}
	s.logger.Info("upload rejected", zap.Error(err))
	return err
}

// CancelUpload abandons an in-flight upload and forgets the input.
func (s *Session) CancelUpload() {
	s.uploadTask.Cancel()
	s.mu.Lock()
	s.upload.Reset()
	s.mu.Unlock()
}

// Process starts the page's job. Options are checked first; a file that is
// selected but not uploaded yet is uploaded before the job starts.
func (s *Session) Process(ctx context.Context, submitted entity.OptionSet) error {
	ctx, span := otel.Tracer("usecase").Start(ctx, "Session.Process")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", s.id), attribute.String("flow", string(s.flow.Kind)))

	opts, err := s.flow.Options(submitted)
	if err != nil {
		metrics.JobsTotal.WithLabelValues(string(s.flow.Kind), "rejected").Inc()
		return s.raiseValidation(ctx, err)
	}

	s.mu.Lock()
	if s.chaining || s.jobTask.Snapshot().State.IsActive() {
		s.mu.Unlock()
		return simtask.ErrBusy
	}
	if s.flow.Upload == nil {
		s.mu.Unlock()
		return s.startJob("", opts)
	}

	switch {
	case s.upload.IsComplete():
		input := s.upload.VideoID
		s.mu.Unlock()
		return s.startJob(input, opts)
	case s.upload.HasSelection() && s.upload.Source == entity.SourceFile:
		s.chaining = true
		s.mu.Unlock()
		return s.uploadThenProcess(ctx, opts)
	case s.uploadTask.Snapshot().State.IsActive():
		s.mu.Unlock()
		return simtask.ErrBusy
	}
	s.mu.Unlock()

	metrics.JobsTotal.WithLabelValues(string(s.flow.Kind), "rejected").Inc()
	return s.raiseValidation(ctx, entity.NewValidationError(entity.ValidationMissingInput, "video", missingVideo.Title, missingVideo.Description))
}

func (s *Session) uploadThenProcess(ctx context.Context, opts entity.OptionSet) error {
	if err := s.StartUpload(ctx); err != nil {
		s.mu.Lock()
		s.chaining = false
		s.mu.Unlock()
		return err
	}

	go func() {
		defer func() {
			s.mu.Lock()
			s.chaining = false
			s.mu.Unlock()
		}()

		videoID, err := s.uploadTask.Wait(s.ctx)
		if err != nil {
			s.logger.Info("upload did not complete, job not started", zap.Error(err))
			return
		}

		// CancelUpload may reset the upload between Wait and the job start.
		err = s.startJobGuarded(videoID, opts, func() error {
			if !s.upload.IsComplete() || s.upload.VideoID != videoID {
				return simtask.ErrCancelled
			}
			return nil
		})
		switch {
		case errors.Is(err, simtask.ErrCancelled):
			s.logger.Info("upload cancelled, job not started")
		case err != nil:
			s.logger.Warn("job start after upload failed", zap.Error(err))
		}
	}()
	return nil
}

func (s *Session) startJob(input string, opts entity.OptionSet) error {
	return s.startJobGuarded(input, opts, nil)
}

// startJobGuarded runs guard under s.mu before the job leaves validation.
func (s *Session) startJobGuarded(input string, opts entity.OptionSet, guard func() error) error {
	return s.jobTask.Start(s.ctx, simtask.Delay(s.timings.ProcessDelay), func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if guard != nil {
			if err := guard(); err != nil {
				return err
			}
		}
		s.jobInput = input
		s.jobOptions = opts
		s.redirect = ""
		return nil
	}, newJobID)
}

func (s *Session) onUpload(snap simtask.Snapshot) {
	policy := s.flow.Upload
	var toast *entity.Notification

	s.mu.Lock()
	source := s.upload.Source
	switch snap.State {
	case simtask.StateRunning:
		if s.upload.State != entity.UploadStateUploading {
			s.upload.MarkUploading()
		}
		s.upload.SetProgress(snap.Progress)
	case simtask.StateDone:
		s.upload.MarkComplete(snap.Result)
		n := policy.Uploaded.info()
		if source == entity.SourceURL {
			n = policy.URLAdded.info()
		}
		toast = &n
	case simtask.StateFailed:
		s.upload.Reset()
		n := policy.Failed.destructive()
		if source == entity.SourceURL {
			n = policy.URLFailed.destructive()
		}
		toast = &n
	case simtask.StateIdle:
		if errors.Is(snap.Err, simtask.ErrCancelled) {
			s.upload.Reset()
		}
	}
	s.mu.Unlock()

	switch snap.State {
	case simtask.StateDone:
		metrics.UploadsTotal.WithLabelValues(string(s.flow.Kind), "completed").Inc()
		s.logger.Info("upload complete", zap.String("video_id", snap.Result), zap.String("source", string(source)))
	case simtask.StateFailed:
		metrics.UploadsTotal.WithLabelValues(string(s.flow.Kind), "failed").Inc()
		s.logger.Error("upload failed", zap.Error(snap.Err))
	}
	if toast != nil {
		s.raise(*toast)
	}
}

func (s *Session) onJob(snap simtask.Snapshot) {
	started, failed := s.flow.Started, s.flow.Failed

	s.mu.Lock()
	promptMode := s.flow.Kind == FlowThumbnail && s.jobOptions.Value("mode") == ThumbnailModePrompts
	if promptMode {
		started, failed = promptJobStarted, promptJobFailed
	}
	switch snap.State {
	case simtask.StateRunning:
		if !s.job.IsActive() {
			s.job.MarkProcessing(s.jobInput, s.jobOptions)
		}
	case simtask.StateDone:
		s.job.MarkDone(snap.Result)
	case simtask.StateFailed:
		s.job.MarkFailed(snap.Err.Error())
	case simtask.StateIdle:
		if errors.Is(snap.Err, simtask.ErrCancelled) {
			s.job.Reset()
		}
	}
	s.mu.Unlock()

	switch snap.State {
	case simtask.StateDone:
		metrics.JobsTotal.WithLabelValues(string(s.flow.Kind), "completed").Inc()
		s.logger.Info("job started", zap.String("job_id", snap.Result))
		if s.flow.Navigate != "" {
			s.Navigate(s.ctx, s.flow.Navigate)
		}
		s.raise(started.info())
		if s.flow.Kind == FlowThumbnail {
			s.startStatusCheck()
		}
	case simtask.StateFailed:
		metrics.JobsTotal.WithLabelValues(string(s.flow.Kind), "failed").Inc()
		s.logger.Error("job failed", zap.Error(snap.Err))
		s.raise(failed.destructive())
	}
}

// startStatusCheck waits one poll interval, pays the status check delay and
// picks up the constant completed result.
func (s *Session) startStatusCheck() {
	s.mu.Lock()
	prompts := s.jobOptions.Value("mode") == ThumbnailModePrompts
	s.mu.Unlock()

	err := s.statusTask.Start(s.ctx, s.timings.statusPlan(), nil, func() (string, error) {
		if prompts {
			return ThumbnailModePrompts, nil
		}
		return ThumbnailModeImages, nil
	})
	if err != nil {
		s.logger.Warn("status check not started", zap.Error(err))
	}
}

func (s *Session) onStatus(snap simtask.Snapshot) {
	switch snap.State {
	case simtask.StateDone:
		s.mu.Lock()
		n := thumbnailsReady.info()
		if snap.Result == ThumbnailModePrompts {
			s.prompts = fixture.ThumbnailPrompts()
			n = promptsReady.info()
		} else {
			s.thumbnails = fixture.Thumbnails()
		}
		s.mu.Unlock()
		s.raise(n)
	case simtask.StateFailed:
		s.logger.Error("status check failed", zap.Error(snap.Err))
		s.raise(statusCheckFailed.destructive())
	}
}

// Navigate records the route the page moves to.
func (s *Session) Navigate(_ context.Context, route string) {
	s.mu.Lock()
	s.redirect = route
	s.mu.Unlock()
	s.logger.Info("navigating", zap.String("route", route))
}

func (s *Session) uploadPolicy(ctx context.Context) (*UploadPolicy, error) {
	if s.flow.Upload == nil {
		return nil, s.raiseValidation(ctx, entity.NewValidationError(entity.ValidationMissingInput, "file",
			"Upload not available", fmt.Sprintf("%s does not take a video", s.flow.Kind)))
	}
	return s.flow.Upload, nil
}

func (s *Session) raiseValidation(_ context.Context, err error) error {
	if ve, ok := entity.AsValidation(err); ok {
		s.raise(ve.Notification())
	}
	s.logger.Info("input rejected", zap.Error(err))
	return err
}

func (s *Session) raise(n entity.Notification) {
	if err := s.notifier.Notify(s.ctx, n); err != nil {
		s.logger.Warn("notification sink failed", zap.Error(err))
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:            s.id,
		Flow:          s.flow.Kind,
		Upload:        *s.upload,
		Job:           *s.job,
		Busy:          s.chaining || s.uploadTask.Snapshot().State.IsActive() || s.jobTask.Snapshot().State.IsActive(),
		Notifications: s.recorder.All(),
		Redirect:      s.redirect,
		Thumbnails:    append([]fixture.Thumbnail(nil), s.thumbnails...),
		Prompts:       append([]string(nil), s.prompts...),
	}
	v.Job.Options = s.job.Options.Clone()
	return v
}

func (s *Session) Notifications() []entity.Notification {
	return s.recorder.All()
}

// Close tears the page down. In-flight tasks are abandoned without a toast.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.uploadTask.Cancel()
		s.jobTask.Cancel()
		s.statusTask.Cancel()
		metrics.ActiveSessions.Dec()
		s.logger.Info("session closed")
	})
}

func newVideoID() (string, error) {
	return "demo-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12], nil
}

func newJobID() (string, error) {
	return "job-" + uuid.NewString(), nil
}
