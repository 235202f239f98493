package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"stripboard/internal/model/export"
	"stripboard/internal/model/schedule"
	"stripboard/internal/pkg/storage"
	scheduleService "stripboard/internal/service/schedule"
)

func newTestJob(kind export.JobKind, location string) *export.Job {
	return &export.Job{
		ID:        "job-1",
		UserID:    "user-1",
		Kind:      kind,
		Location:  location,
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

// fakeJobRepo keeps jobs in memory; Update applies the same field names
// the service writes through the real repository.
type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*export.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*export.Job)}
}

func (r *fakeJobRepo) Create(_ context.Context, job *export.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = export.JobStatusPending
	}
	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id string) (*export.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	out := *job
	return &out, nil
}

func (r *fakeJobRepo) FindByUserID(_ context.Context, userID string, _ int64) ([]*export.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []*export.Job
	for _, job := range r.jobs {
		if job.UserID == userID {
			out := *job
			jobs = append(jobs, &out)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) Update(_ context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return errors.New("not found")
	}
	for field, value := range updates {
		switch field {
		case "status":
			job.Status = value.(export.JobStatus)
		case "progress":
			job.Progress = value.(float64)
		case "document_key":
			job.DocumentKey = value.(string)
		case "document_url":
			job.DocumentURL = value.(string)
		case "error":
			job.Error = value.(string)
		case "completed_at":
			t := value.(time.Time)
			job.CompletedAt = &t
		}
	}
	job.UpdatedAt = time.Now()
	return nil
}

// fakeStorage keeps uploaded documents in memory.
type fakeStorage struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{docs: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = body
	return "fake://" + key, nil
}

func (s *fakeStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.docs[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (s *fakeStorage) GetPresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "fake://" + key, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[key]
	return ok, nil
}

func (s *fakeStorage) GetFileInfo(_ context.Context, key string) (*storage.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.docs[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return &storage.FileInfo{Key: key, Size: int64(len(body))}, nil
}

func (s *fakeStorage) GetStorageType() string { return "fake" }

// blockingStorage parks Upload until the render context is cancelled,
// keeping a job in the running state for as long as a test needs.
type blockingStorage struct {
	*fakeStorage
	uploading chan struct{}
}

func newBlockingStorage() *blockingStorage {
	return &blockingStorage{
		fakeStorage: newFakeStorage(),
		uploading:   make(chan struct{}),
	}
}

func (s *blockingStorage) Upload(ctx context.Context, _ string, _ io.Reader, _ string) (string, error) {
	close(s.uploading)
	<-ctx.Done()
	return "", ctx.Err()
}

// failingStorage rejects every upload.
type failingStorage struct {
	*fakeStorage
	err error
}

func (s *failingStorage) Upload(_ context.Context, _ string, _ io.Reader, _ string) (string, error) {
	return "", s.err
}

// fakeScheduleRepo is the minimal schedule store the export service
// reads through.
type fakeScheduleRepo struct {
	scenes []schedule.Scene
}

func (r *fakeScheduleRepo) Load(_ context.Context, _ string) ([]schedule.Scene, error) {
	out := make([]schedule.Scene, len(r.scenes))
	copy(out, r.scenes)
	return out, nil
}

func (r *fakeScheduleRepo) Replace(_ context.Context, _ string, scenes []schedule.Scene) error {
	r.scenes = scenes
	return nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, _ string) error {
	r.scenes = nil
	return nil
}

func newTestService(scenes []schedule.Scene) (*Service, *fakeJobRepo, *fakeStorage) {
	store := newFakeStorage()
	svc, jobs := newTestServiceWith(scenes, store)
	return svc, jobs, store
}

func newTestServiceWith(scenes []schedule.Scene, store storage.Storage) (*Service, *fakeJobRepo) {
	jobs := newFakeJobRepo()
	schedules := scheduleService.NewService(&fakeScheduleRepo{scenes: scenes}, nil)
	return NewService(jobs, schedules, store, 10*time.Second), jobs
}

func waitForTerminal(t *testing.T, jobs *fakeJobRepo, jobID string) *export.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := jobs.FindByID(context.Background(), jobID)
		if err == nil {
			switch job.Status {
			case export.JobStatusCompleted, export.JobStatusFailed, export.JobStatusCancelled:
				return job
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("export job did not reach a terminal state")
	return nil
}

func testScenes() []schedule.Scene {
	return []schedule.Scene{
		{ID: "s1", SceneNo: 3, Location: "Studio A", Cast: []string{"Alice"}, PageCount: 1.5},
		{ID: "s2", SceneNo: 1, Location: "Studio B", Vehicles: "Van"},
		{ID: "s3", SceneNo: 2, Location: "Studio A", DayNight: "Night"},
	}
}

func TestService_Start(t *testing.T) {
	Convey("Service.Start validates the selection before creating a job", t, func() {
		ctx := context.Background()
		svc, _, _ := newTestService(testScenes())

		Convey("an unknown kind is rejected", func() {
			_, err := svc.Start(ctx, "user-1", StartInput{Kind: "pdf"})
			So(err, ShouldEqual, ErrUnknownKind)
		})

		Convey("a breakdown export requires a location", func() {
			_, err := svc.Start(ctx, "user-1", StartInput{Kind: export.JobKindBreakdown, Location: "  "})
			So(err, ShouldEqual, ErrLocationRequired)
		})

		Convey("a valid selection returns a pending job", func() {
			job, err := svc.Start(ctx, "user-1", StartInput{Kind: export.JobKindMaster})
			So(err, ShouldBeNil)
			So(job.ID, ShouldNotBeEmpty)
			So(job.Status, ShouldEqual, export.JobStatusPending)
		})

		Convey("a batch export over an empty schedule is refused", func() {
			emptySvc, _, _ := newTestService(nil)
			_, err := emptySvc.Start(ctx, "user-1", StartInput{Kind: export.JobKindAllBreakdowns})
			So(err, ShouldEqual, ErrNoLocations)
		})
	})
}

func TestService_RunMaster(t *testing.T) {
	Convey("a master export renders every scene into one document", t, func() {
		ctx := context.Background()
		svc, jobs, _ := newTestService(testScenes())

		job, err := svc.Start(ctx, "user-1", StartInput{Kind: export.JobKindMaster})
		So(err, ShouldBeNil)

		done := waitForTerminal(t, jobs, job.ID)
		So(done.Status, ShouldEqual, export.JobStatusCompleted)
		So(done.Progress, ShouldEqual, 1.0)
		So(done.DocumentKey, ShouldNotBeEmpty)
		So(done.CompletedAt, ShouldNotBeNil)

		rc, _, err := svc.Download(ctx, "user-1", job.ID)
		So(err, ShouldBeNil)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		So(err, ShouldBeNil)
		doc := string(body)
		So(doc, ShouldContainSubstring, "Master Schedule")
		So(doc, ShouldContainSubstring, "Studio A")
		So(doc, ShouldContainSubstring, "Studio B")
		So(doc, ShouldContainSubstring, "Alice")
	})
}

func TestService_RunAllBreakdowns(t *testing.T) {
	Convey("a batch export renders one page per location in lexicographic order", t, func() {
		ctx := context.Background()
		svc, jobs, _ := newTestService(testScenes())

		job, err := svc.Start(ctx, "user-1", StartInput{Kind: export.JobKindAllBreakdowns})
		So(err, ShouldBeNil)

		done := waitForTerminal(t, jobs, job.ID)
		So(done.Status, ShouldEqual, export.JobStatusCompleted)

		rc, _, err := svc.Download(ctx, "user-1", job.ID)
		So(err, ShouldBeNil)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		So(err, ShouldBeNil)

		pages := strings.Split(string(body), pageSeparator)
		So(len(pages), ShouldEqual, 2)
		So(pages[0], ShouldStartWith, "Studio A")
		So(pages[1], ShouldStartWith, "Studio B")
	})
}

func TestService_Download(t *testing.T) {
	Convey("Service.Download guards ownership and completion", t, func() {
		ctx := context.Background()
		svc, jobs, _ := newTestService(testScenes())

		job, err := svc.Start(ctx, "user-1", StartInput{Kind: export.JobKindMaster})
		So(err, ShouldBeNil)
		waitForTerminal(t, jobs, job.ID)

		Convey("another user's job looks like it does not exist", func() {
			_, _, err := svc.Download(ctx, "user-2", job.ID)
			So(err, ShouldEqual, ErrJobNotFound)
		})

		Convey("an unknown job id is not found", func() {
			_, _, err := svc.Download(ctx, "user-1", "no-such-job")
			So(err, ShouldEqual, ErrJobNotFound)
		})
	})
}

func TestService_Cancel(t *testing.T) {
	Convey("Service.Cancel only applies to live jobs", t, func() {
		ctx := context.Background()
		svc, jobs, _ := newTestService(testScenes())

		Convey("a finished job cannot be cancelled", func() {
			job, err := svc.Start(ctx, "user-1", StartInput{Kind: export.JobKindMaster})
			So(err, ShouldBeNil)
			waitForTerminal(t, jobs, job.ID)

			// the run goroutine may still be releasing its cancel func
			var cancelErr error
			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				cancelErr = svc.Cancel(ctx, "user-1", job.ID)
				if errors.Is(cancelErr, ErrJobNotRunning) {
					break
				}
				time.Sleep(10 * time.Millisecond)
			}
			So(cancelErr, ShouldEqual, ErrJobNotRunning)
		})

		Convey("an unknown job is not found", func() {
			err := svc.Cancel(ctx, "user-1", "no-such-job")
			So(err, ShouldEqual, ErrJobNotFound)
		})
	})
}

func TestService_CancelRunningJob(t *testing.T) {
	Convey("cancelling a running job drives it to the cancelled state", t, func() {
		ctx := context.Background()
		store := newBlockingStorage()
		svc, jobs := newTestServiceWith(testScenes(), store)

		job, err := svc.Start(ctx, "user-1", StartInput{Kind: export.JobKindMaster})
		So(err, ShouldBeNil)

		// wait until the job is parked in the upload before cancelling
		select {
		case <-store.uploading:
		case <-time.After(5 * time.Second):
			t.Fatal("export job never reached the upload")
		}

		So(svc.Cancel(ctx, "user-1", job.ID), ShouldBeNil)

		done := waitForTerminal(t, jobs, job.ID)
		So(done.Status, ShouldEqual, export.JobStatusCancelled)
		So(done.Error, ShouldNotBeEmpty)
		So(done.DocumentKey, ShouldBeEmpty)
		So(done.CompletedAt, ShouldBeNil)
	})
}

func TestService_UploadFailure(t *testing.T) {
	Convey("a failed upload marks the job failed with the cause recorded", t, func() {
		ctx := context.Background()
		store := &failingStorage{fakeStorage: newFakeStorage(), err: errors.New("disk full")}
		svc, jobs := newTestServiceWith(testScenes(), store)

		job, err := svc.Start(ctx, "user-1", StartInput{Kind: export.JobKindMaster})
		So(err, ShouldBeNil)

		done := waitForTerminal(t, jobs, job.ID)
		So(done.Status, ShouldEqual, export.JobStatusFailed)
		So(done.Error, ShouldContainSubstring, "disk full")
		So(done.DocumentKey, ShouldBeEmpty)

		Convey("the failed document cannot be downloaded", func() {
			_, _, err := svc.Download(ctx, "user-1", job.ID)
			So(err, ShouldEqual, ErrJobNotCompleted)
		})

		Convey("the schedule itself is untouched, so a retry can succeed", func() {
			retrySvc, retryJobs, _ := newTestService(testScenes())
			retry, err := retrySvc.Start(ctx, "user-1", StartInput{Kind: export.JobKindMaster})
			So(err, ShouldBeNil)
			So(waitForTerminal(t, retryJobs, retry.ID).Status, ShouldEqual, export.JobStatusCompleted)
		})
	})
}
