package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"leetui/internal/leetcode"
	"leetui/internal/telemetry"
	"leetui/internal/workspace"
)

// DataService is the remote problem catalogue and judge.
type DataService interface {
	Status(ctx context.Context) (leetcode.UserStatus, error)
	Profile(ctx context.Context, username string) (leetcode.Profile, error)
	Problems(ctx context.Context, skip, limit int, search string) (leetcode.ProblemList, error)
	Daily(ctx context.Context) (leetcode.DailyChallenge, error)
	Question(ctx context.Context, slug string) (leetcode.Question, error)
	RunTests(ctx context.Context, slug, questionID, lang, code, input string) (leetcode.RunCheck, error)
	Submit(ctx context.Context, slug, questionID, lang, code string) (leetcode.SubmissionCheck, error)
}

// Files is the per-problem workspace on disk.
type Files interface {
	Ensure(slug string) (string, error)
	List(slug string) ([]string, error)
	Create(slug, name string, data []byte) error
	WriteDescription(slug, markdown string) error
	Read(slug, name string) ([]byte, error)
	Path(slug, name string) string
}

// Opener hands files to an external editor and returns when it is done
// with them.
type Opener interface {
	Open(ctx context.Context, paths ...string) error
}

// DirWatch follows one workspace directory at a time.
type DirWatch interface {
	Watch(dir string) error
}

type Services struct {
	Data    DataService
	Files   Files
	Opener  Opener
	Watcher DirWatch
	Logger  *telemetry.Logger
}

const DefaultWorkers = 4

// Dispatcher performs requests on a small worker pool and pushes one
// event per request onto the queue.
type Dispatcher struct {
	svc     Services
	queue   *Queue
	reqs    chan Request
	workers int

	stop     chan struct{}
	stopOnce sync.Once
}

func NewDispatcher(q *Queue, svc Services, workers int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Dispatcher{
		svc:     svc,
		queue:   q,
		reqs:    make(chan Request, DefaultQueueSize),
		workers: workers,
		stop:    make(chan struct{}),
	}
}

// Submit never blocks the caller. When the request buffer is full the
// hand-off waits in its own goroutine.
func (d *Dispatcher) Submit(r Request) {
	select {
	case d.reqs <- r:
		return
	default:
	}
	go func() {
		select {
		case d.reqs <- r:
		case <-d.stop:
		}
	}()
}

// Run serves requests until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer d.stopOnce.Do(func() { close(d.stop) })
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case r := <-d.reqs:
					ev := d.Handle(gctx, r)
					if ev != nil {
						d.queue.Push(ev)
					}
				}
			}
		})
	}
	return g.Wait()
}

// Handle performs one request and returns its event.
func (d *Dispatcher) Handle(ctx context.Context, r Request) Event {
	start := time.Now()
	ev := d.handle(ctx, r)
	fields := map[string]any{"op": r.Op(), "elapsed_ms": time.Since(start).Milliseconds()}
	if ne, ok := ev.(NetworkError); ok {
		fields["kind"] = ne.Kind.String()
		fields["error"] = ne.Message
		d.svc.Logger.Error("dispatch.request_failed", fields)
	} else {
		d.svc.Logger.Debug("dispatch.request_done", fields)
	}
	return ev
}

func (d *Dispatcher) handle(ctx context.Context, r Request) Event {
	switch r := r.(type) {
	case FetchStatus:
		s, err := d.svc.Data.Status(ctx)
		if err != nil {
			return failure(r, 0, KindNetwork, err)
		}
		return StatusLoaded{Status: s}
	case FetchProfile:
		p, err := d.svc.Data.Profile(ctx, r.Username)
		if err != nil {
			return failure(r, 0, KindNetwork, err)
		}
		return ProfileLoaded{Profile: p}
	case FetchDaily:
		daily, err := d.svc.Data.Daily(ctx)
		if err != nil {
			return failure(r, 0, KindNetwork, err)
		}
		return DailyLoaded{Daily: daily}
	case FetchProblems:
		list, err := d.svc.Data.Problems(ctx, r.Skip, r.Limit, r.Search)
		if err != nil {
			return failure(r, r.Token, KindNetwork, err)
		}
		return ProblemsLoaded{Token: r.Token, Problems: list.Questions, Total: list.Total}
	case FetchQuestion:
		q, err := d.svc.Data.Question(ctx, r.Slug)
		if err != nil {
			return failure(r, r.Token, KindNetwork, err)
		}
		return QuestionLoaded{Token: r.Token, Question: q}
	case OpenWorkspace:
		dir, err := d.svc.Files.Ensure(r.Slug)
		if err != nil {
			return failure(r, 0, KindFilesystem, err)
		}
		if err := d.svc.Files.WriteDescription(r.Slug, leetcode.Markdown(r.Content)); err != nil {
			return failure(r, 0, KindFilesystem, err)
		}
		if d.svc.Watcher != nil {
			if err := d.svc.Watcher.Watch(dir); err != nil {
				d.svc.Logger.Error("workspace.watch_failed", map[string]any{"dir": dir, "error": err.Error()})
			}
		}
		return d.list(r, r.Slug, dir)
	case ListFiles:
		return d.list(r, r.Slug, "")
	case CreateFile:
		if err := d.svc.Files.Create(r.Slug, r.Name, []byte(r.Contents)); err != nil {
			return failure(r, 0, KindFilesystem, err)
		}
		return FileCreated{Slug: r.Slug, Name: r.Name}
	case OpenFile:
		if d.svc.Opener == nil {
			return failure(r, 0, KindEditor, errors.New("no editor configured"))
		}
		path := d.svc.Files.Path(r.Slug, r.Name)
		if err := d.svc.Opener.Open(ctx, d.svc.Files.Path(r.Slug, workspace.DescriptionFile), path); err != nil {
			return failure(r, 0, KindEditor, err)
		}
		return EditorClosed{Slug: r.Slug, Path: path}
	case RunTests:
		code, err := d.svc.Files.Read(r.Slug, r.File)
		if err != nil {
			return failure(r, r.Token, KindFilesystem, err)
		}
		check, err := d.svc.Data.RunTests(ctx, r.Slug, r.QuestionID, r.Lang, string(code), r.Input)
		if err != nil {
			return failure(r, r.Token, KindNetwork, err)
		}
		return RunFinished{Token: r.Token, Check: check}
	case Submit:
		code, err := d.svc.Files.Read(r.Slug, r.File)
		if err != nil {
			return failure(r, r.Token, KindFilesystem, err)
		}
		check, err := d.svc.Data.Submit(ctx, r.Slug, r.QuestionID, r.Lang, string(code))
		if err != nil {
			return failure(r, r.Token, KindNetwork, err)
		}
		return SubmissionFinished{Token: r.Token, Check: check}
	default:
		return failure(r, 0, KindNetwork, fmt.Errorf("unknown request %T", r))
	}
}

func (d *Dispatcher) list(r Request, slug, dir string) Event {
	files, err := d.svc.Files.List(slug)
	if err != nil {
		return failure(r, 0, KindFilesystem, err)
	}
	return FilesListed{Slug: slug, Dir: dir, Files: files}
}

func failure(r Request, token uint64, kind ErrorKind, err error) NetworkError {
	return NetworkError{Kind: kind, Op: r.Op(), Token: token, Message: err.Error()}
}
