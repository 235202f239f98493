package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"stripboard/internal/model/export"
	"stripboard/internal/pkg/id"
	"stripboard/internal/pkg/storage"
	repository "stripboard/internal/repository/export"
	scheduleService "stripboard/internal/service/schedule"
)

var (
	ErrJobNotFound      = errors.New("export job not found")
	ErrJobNotCompleted  = errors.New("export job is not completed")
	ErrJobNotRunning    = errors.New("export job is not running")
	ErrUnknownKind      = errors.New("unknown export kind")
	ErrLocationRequired = errors.New("location is required for a breakdown export")
	ErrNoLocations      = errors.New("no locations to breakdown")
)

// pageSeparator joins rendered units into one document, one page per
// unit.
const pageSeparator = "\f\n"

// Service runs export jobs. A job renders its units strictly in order,
// one unit materialized at a time, then uploads the combined document
// to storage. Jobs are cancellable; failure or cancellation leaves the
// scene collection untouched, so retrying is always safe.
type Service struct {
	jobs      repository.JobRepository
	schedules *scheduleService.Service
	store     storage.Storage
	timeout   time.Duration

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// NewService creates an export service.
func NewService(
	jobs repository.JobRepository,
	schedules *scheduleService.Service,
	store storage.Storage,
	renderTimeout time.Duration,
) *Service {
	if renderTimeout <= 0 {
		renderTimeout = 60 * time.Second
	}
	return &Service{
		jobs:      jobs,
		schedules: schedules,
		store:     store,
		timeout:   renderTimeout,
		cancels:   make(map[string]context.CancelFunc),
	}
}

// StartInput selects what to export.
type StartInput struct {
	Kind     export.JobKind
	Location string // breakdown kind only
}

// Start creates a job and begins rendering in the background. The
// returned job is in pending state; poll Get for progress.
func (s *Service) Start(ctx context.Context, userID string, in StartInput) (*export.Job, error) {
	if !in.Kind.IsValid() {
		return nil, ErrUnknownKind
	}
	if in.Kind == export.JobKindBreakdown && strings.TrimSpace(in.Location) == "" {
		return nil, ErrLocationRequired
	}
	if in.Kind == export.JobKindAllBreakdowns {
		scenes, err := s.schedules.Load(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(scheduleService.BuildIndex(scenes).Locations) == 0 {
			return nil, ErrNoLocations
		}
	}

	job := &export.Job{
		ID:       id.New(),
		UserID:   userID,
		Kind:     in.Kind,
		Location: strings.TrimSpace(in.Location),
		Status:   export.JobStatusPending,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.mu.Lock()
	s.cancels[job.ID] = cancel
	s.mu.Unlock()

	go s.run(runCtx, *job)

	return job, nil
}

// Get returns a job owned by the user.
func (s *Service) Get(ctx context.Context, userID, jobID string) (*export.Job, error) {
	if !id.IsValid(jobID) {
		return nil, ErrJobNotFound
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if job.UserID != userID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// List returns the user's recent jobs.
func (s *Service) List(ctx context.Context, userID string) ([]*export.Job, error) {
	return s.jobs.FindByUserID(ctx, userID, 50)
}

// Cancel stops a pending or running job. The job goroutine observes the
// cancellation between units and records the cancelled state.
func (s *Service) Cancel(ctx context.Context, userID, jobID string) error {
	if _, err := s.Get(ctx, userID, jobID); err != nil {
		return err
	}

	s.mu.Lock()
	cancel, ok := s.cancels[jobID]
	s.mu.Unlock()
	if !ok {
		return ErrJobNotRunning
	}
	cancel()
	return nil
}

// Download opens the finished document of a completed job.
func (s *Service) Download(ctx context.Context, userID, jobID string) (io.ReadCloser, *export.Job, error) {
	job, err := s.Get(ctx, userID, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.Status != export.JobStatusCompleted || job.DocumentKey == "" {
		return nil, nil, ErrJobNotCompleted
	}
	rc, err := s.store.Download(ctx, job.DocumentKey)
	if err != nil {
		return nil, nil, err
	}
	return rc, job, nil
}

// run renders the job's units sequentially and uploads the result.
func (s *Service) run(ctx context.Context, job export.Job) {
	defer func() {
		s.mu.Lock()
		if cancel, ok := s.cancels[job.ID]; ok {
			cancel()
			delete(s.cancels, job.ID)
		}
		s.mu.Unlock()
	}()

	s.update(job.ID, map[string]interface{}{"status": export.JobStatusRunning})

	scenes, err := s.schedules.Load(ctx, job.UserID)
	if err != nil {
		s.fail(ctx, job, err)
		return
	}

	var units []Unit
	switch job.Kind {
	case export.JobKindMaster:
		units = []Unit{MasterUnit(scenes)}
	case export.JobKindBreakdown:
		units = []Unit{BreakdownUnit(scheduleService.Breakdown{
			Location: job.Location,
			Scenes:   scheduleService.BreakdownFor(scenes, job.Location),
		})}
	case export.JobKindAllBreakdowns:
		idx := scheduleService.BuildIndex(scenes)
		locations := scheduleService.LocationsSorted(idx)
		for _, b := range scheduleService.AllBreakdowns(scenes, locations) {
			units = append(units, BreakdownUnit(b))
		}
	}

	var sb strings.Builder
	for i, unit := range units {
		if err := ctx.Err(); err != nil {
			s.fail(ctx, job, err)
			return
		}
		if i > 0 {
			sb.WriteString(pageSeparator)
		}
		sb.WriteString(RenderUnit(unit))
		s.update(job.ID, map[string]interface{}{
			"progress": float64(i+1) / float64(len(units)),
		})
	}

	key := documentKey(&job)
	url, err := s.store.Upload(ctx, key, strings.NewReader(sb.String()), "text/plain; charset=utf-8")
	if err != nil {
		s.fail(ctx, job, err)
		return
	}

	now := time.Now()
	s.update(job.ID, map[string]interface{}{
		"status":       export.JobStatusCompleted,
		"progress":     1.0,
		"document_key": key,
		"document_url": url,
		"completed_at": now,
	})

	log.Info().
		Str("job_id", job.ID).
		Str("user_id", job.UserID).
		Str("kind", string(job.Kind)).
		Str("document_key", key).
		Msg("export job completed")
}

func (s *Service) fail(ctx context.Context, job export.Job, cause error) {
	status := export.JobStatusFailed
	if errors.Is(cause, context.Canceled) {
		status = export.JobStatusCancelled
	}
	s.update(job.ID, map[string]interface{}{
		"status": status,
		"error":  cause.Error(),
	})

	log.Warn().
		Err(cause).
		Str("job_id", job.ID).
		Str("kind", string(job.Kind)).
		Str("status", string(status)).
		Msg("export job did not complete")
}

// update writes job fields with a fresh context so a cancelled render
// context cannot block recording the terminal state.
func (s *Service) update(jobID string, fields map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.jobs.Update(ctx, jobID, fields); err != nil {
		log.Error().Err(err).Str("job_id", jobID).Msg("failed to update export job")
	}
}

// Filename returns the user-facing document filename for a job.
func Filename(job *export.Job) string {
	date := job.CreatedAt.Format("2006-01-02")
	switch job.Kind {
	case export.JobKindMaster:
		return fmt.Sprintf("Master_Schedule_%s.txt", date)
	case export.JobKindBreakdown:
		return fmt.Sprintf("Breakdown_%s_%s.txt", sanitize(job.Location), date)
	default:
		return fmt.Sprintf("All_Breakdowns_%s.txt", date)
	}
}

func documentKey(job *export.Job) string {
	return fmt.Sprintf("exports/%s/%s/%s", job.UserID, job.ID, Filename(job))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}
