package batch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/kbukum/grangerbatch/errors"
)

// --- test helpers ---

func okExec() Executor {
	return ExecutorFunc(func(_ context.Context, _, _ string) (bool, error) {
		return true, nil
	})
}

func testJob(id string) JobType {
	return JobType{
		ID:            id,
		Name:          "Job " + id,
		OutputSubpath: id,
		Exec:          okExec(),
	}
}

// --- Registry tests ---

func TestRegistry_RegisterLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(testJob("matrix"))

	jt, ok := r.Lookup("matrix")
	if !ok || jt.ID != "matrix" {
		t.Fatalf("expected to find 'matrix', got %q (ok=%v)", jt.ID, ok)
	}

	_, ok = r.Lookup("missing")
	if ok {
		t.Fatal("expected missing job type")
	}

	if r.Len() != 1 {
		t.Fatalf("expected 1 registered type, got %d", r.Len())
	}
}

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"network", "matrix", "global"} {
		r.Register(testJob(id))
	}

	ids := r.AllIDs()
	want := []string{"network", "matrix", "global"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("unexpected order: %v", ids)
		}
	}

	all := r.All()
	for i := range want {
		if all[i].ID != want[i] {
			t.Fatalf("unexpected All() order: %v", all)
		}
	}
}

func TestRegistry_ReRegisterKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(testJob("a"))
	r.Register(testJob("b"))

	updated := testJob("a")
	updated.Name = "Renamed"
	r.Register(updated)

	if r.Len() != 2 {
		t.Fatalf("expected 2 types after re-register, got %d", r.Len())
	}
	ids := r.AllIDs()
	if ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected order after re-register: %v", ids)
	}
	jt, _ := r.Lookup("a")
	if jt.Name != "Renamed" {
		t.Fatalf("expected updated name, got %q", jt.Name)
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry()
	r.Register(testJob("matrix"))

	_, err := r.Resolve("bogus")
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if apperrors.CodeOf(err) != apperrors.ErrCodeUnknownJobType {
		t.Fatalf("expected UNKNOWN_JOB_TYPE, got %s", apperrors.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "matrix") {
		t.Fatalf("expected known ids in message, got %q", err.Error())
	}
}

func TestRegistry_ResolveAll_FailFast(t *testing.T) {
	r := NewRegistry()
	r.Register(testJob("a"))
	r.Register(testJob("b"))

	jobs, err := r.ResolveAll([]string{"a", "bogus", "b"})
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if jobs != nil {
		t.Fatalf("expected no partial resolution, got %d jobs", len(jobs))
	}
}

// --- Gate tests ---

func TestGate_ClampsCapacity(t *testing.T) {
	g := NewGate(0)
	if g.Capacity() != 1 {
		t.Fatalf("expected capacity 1, got %d", g.Capacity())
	}
}

func TestGate_LimitsConcurrency(t *testing.T) {
	g := NewGate(2)

	var running atomic.Int32
	var maxRunning atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Run(context.Background(), func() error {
				cur := running.Add(1)
				for {
					old := maxRunning.Load()
					if cur <= old || maxRunning.CompareAndSwap(old, cur) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	if maxRunning.Load() > 2 {
		t.Fatalf("expected max 2 concurrent, got %d", maxRunning.Load())
	}
}

func TestGate_SerializesWithCapacityOne(t *testing.T) {
	g := NewGate(1)

	var running atomic.Int32
	var maxRunning atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Run(context.Background(), func() error {
				cur := running.Add(1)
				for {
					old := maxRunning.Load()
					if cur <= old || maxRunning.CompareAndSwap(old, cur) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	if maxRunning.Load() != 1 {
		t.Fatalf("expected serialized execution, got %d concurrent", maxRunning.Load())
	}
}

func TestGate_AvailableAndInUse(t *testing.T) {
	g := NewGate(3)

	if g.Available() != 3 {
		t.Fatalf("expected 3 available, got %d", g.Available())
	}
	if g.InUse() != 0 {
		t.Fatalf("expected 0 in use, got %d", g.InUse())
	}

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		g.Run(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started

	if g.Available() != 2 {
		t.Fatalf("expected 2 available, got %d", g.Available())
	}
	if g.InUse() != 1 {
		t.Fatalf("expected 1 in use, got %d", g.InUse())
	}

	close(release)
	<-done

	if g.Available() != 3 {
		t.Fatalf("expected 3 available after release, got %d", g.Available())
	}
}

func TestGate_ContextCanceledWhileWaiting(t *testing.T) {
	g := NewGate(1)

	// Hold the only slot.
	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		g.Run(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := g.Run(ctx, func() error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatal("expected fn not to run after cancellation")
	}

	close(release)
}

func TestGate_Callbacks(t *testing.T) {
	g := NewGate(2)

	var acquired, released atomic.Int32
	g.OnAcquire = func() { acquired.Add(1) }
	g.OnRelease = func() { released.Add(1) }

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Run(context.Background(), func() error { return nil })
		}()
	}
	wg.Wait()

	if acquired.Load() != 3 {
		t.Fatalf("expected 3 acquire callbacks, got %d", acquired.Load())
	}
	if released.Load() != 3 {
		t.Fatalf("expected 3 release callbacks, got %d", released.Load())
	}
}

// --- Runner tests ---

func TestRunner_Success(t *testing.T) {
	out := NewRunner(nil).Run(context.Background(), testJob("matrix"), "/in", "/out")

	if out.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", out.Status)
	}
	if out.Err != nil {
		t.Fatalf("unexpected error: %v", out.Err)
	}
	if out.JobID != "matrix" || out.Name != "Job matrix" {
		t.Fatalf("unexpected identity: %s / %s", out.JobID, out.Name)
	}
	if out.FinishedAt.Before(out.StartedAt) {
		t.Fatal("expected finish at or after start")
	}
}

func TestRunner_ExecutorError(t *testing.T) {
	execErr := errors.New("solver crashed")
	jt := testJob("matrix")
	jt.Exec = ExecutorFunc(func(_ context.Context, _, _ string) (bool, error) {
		return false, execErr
	})

	out := NewRunner(nil).Run(context.Background(), jt, "/in", "/out")

	if out.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", out.Status)
	}
	if apperrors.CodeOf(out.Err) != apperrors.ErrCodeJobFailure {
		t.Fatalf("expected JOB_FAILURE, got %s", apperrors.CodeOf(out.Err))
	}
	if !errors.Is(out.Err, execErr) {
		t.Fatalf("expected cause in chain, got %v", out.Err)
	}
}

func TestRunner_ReportedFailure(t *testing.T) {
	jt := testJob("nodal")
	jt.Exec = ExecutorFunc(func(_ context.Context, _, _ string) (bool, error) {
		return false, nil
	})

	out := NewRunner(nil).Run(context.Background(), jt, "/in", "/out")

	if out.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", out.Status)
	}
	if apperrors.CodeOf(out.Err) != apperrors.ErrCodeJobFailure {
		t.Fatalf("expected JOB_FAILURE, got %s", apperrors.CodeOf(out.Err))
	}
	if !strings.Contains(out.Err.Error(), "reported failure") {
		t.Fatalf("unexpected message: %v", out.Err)
	}
}

func TestRunner_PanicRecovered(t *testing.T) {
	jt := testJob("pairwise")
	jt.Exec = ExecutorFunc(func(_ context.Context, _, _ string) (bool, error) {
		panic("corrupted adjacency data")
	})

	out := NewRunner(nil).Run(context.Background(), jt, "/in", "/out")

	if out.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", out.Status)
	}
	if out.Err == nil || !strings.Contains(out.Err.Error(), "corrupted adjacency data") {
		t.Fatalf("expected panic value in error, got %v", out.Err)
	}
}

func TestRunner_NilExecutor(t *testing.T) {
	jt := JobType{ID: "empty", Name: "Empty"}

	out := NewRunner(nil).Run(context.Background(), jt, "/in", "/out")

	if out.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", out.Status)
	}
	if out.Err == nil {
		t.Fatal("expected error for missing executor")
	}
}

func TestRunner_PassesDirectories(t *testing.T) {
	var gotIn, gotOut string
	jt := testJob("global")
	jt.Exec = ExecutorFunc(func(_ context.Context, inputDir, outputDir string) (bool, error) {
		gotIn, gotOut = inputDir, outputDir
		return true, nil
	})

	NewRunner(nil).Run(context.Background(), jt, "/data/in", "/data/out/global")

	if gotIn != "/data/in" || gotOut != "/data/out/global" {
		t.Fatalf("unexpected dirs: %q %q", gotIn, gotOut)
	}
}

// --- Result tests ---

func TestResult_Counts(t *testing.T) {
	r := &Result{Outcomes: []Outcome{
		{Status: StatusCompleted},
		{Status: StatusFailed},
		{Status: StatusCompleted},
	}}

	if r.Succeeded() != 2 {
		t.Fatalf("expected 2 succeeded, got %d", r.Succeeded())
	}
	if r.Failed() != 1 {
		t.Fatalf("expected 1 failed, got %d", r.Failed())
	}
	if r.AllSucceeded() {
		t.Fatal("expected AllSucceeded to be false")
	}
}

func TestOutcome_Duration(t *testing.T) {
	start := time.Now()
	o := Outcome{StartedAt: start, FinishedAt: start.Add(3 * time.Second)}
	if o.Duration() != 3*time.Second {
		t.Fatalf("expected 3s, got %v", o.Duration())
	}
}
