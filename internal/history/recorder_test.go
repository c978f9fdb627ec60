package history

import (
	"context"
	"errors"
	"testing"

	"github.com/petrijr/stepline/pkg/api"
)

func mustStep(t *testing.T, name string, action api.Action) *api.Step {
	t.Helper()

	s, err := api.NewStep(name, "1.0.0", "Test step "+name, action)
	if err != nil {
		t.Fatalf("NewStep(%q) failed: %v", name, err)
	}
	return s
}

func TestRecorderRecordsSuccessfulRun(t *testing.T) {
	ctx := context.Background()
	rec := NewRecorder(NewMemoryStore())

	s1 := mustStep(t, "one", func() error { return nil })
	s2 := mustStep(t, "two", func() error { return nil })

	p, err := api.NewPipelineWithObserver("etl", "1.0.0", "Recorded pipeline", api.Sequence(s1, s2), rec)
	if err != nil {
		t.Fatalf("NewPipelineWithObserver failed: %v", err)
	}

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	runs, err := rec.ListRuns(ctx, api.RunListOptions{Pipeline: "etl"})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	run := runs[0]
	if run.Status != api.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", run.Status)
	}
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		t.Fatalf("expected timestamps recorded: %+v", run)
	}

	steps, err := rec.ListSteps(ctx, run.ID)
	if err != nil {
		t.Fatalf("ListSteps failed: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 step records, got %d", len(steps))
	}
	if steps[0].Step != "one" || steps[1].Step != "two" {
		t.Fatalf("unexpected step order: %+v", steps)
	}
}

func TestRecorderRecordsFailedRun(t *testing.T) {
	ctx := context.Background()
	rec := NewRecorder(NewMemoryStore())
	boom := errors.New("boom")

	s1 := mustStep(t, "one", func() error { return nil })
	s2 := mustStep(t, "two", func() error { return boom })

	p, err := api.NewPipelineWithObserver("etl", "1.0.0", "Recorded pipeline", api.Sequence(s1, s2), rec)
	if err != nil {
		t.Fatalf("NewPipelineWithObserver failed: %v", err)
	}

	if err := p.Run(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	runs, err := rec.ListRuns(ctx, api.RunListOptions{Status: api.StatusFailed})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 failed run, got %d", len(runs))
	}
	if runs[0].Error != "boom" {
		t.Fatalf("expected error message recorded, got %q", runs[0].Error)
	}

	steps, err := rec.ListSteps(ctx, runs[0].ID)
	if err != nil {
		t.Fatalf("ListSteps failed: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 step records, got %d", len(steps))
	}
	if steps[1].Error != "boom" {
		t.Fatalf("expected step error recorded, got %q", steps[1].Error)
	}
}

func TestRecorderRecordsCycleFailure(t *testing.T) {
	ctx := context.Background()
	rec := NewRecorder(NewMemoryStore())

	a := mustStep(t, "a", func() error { return nil })
	b := mustStep(t, "b", func() error { return nil })

	p, err := api.NewPipelineWithObserver("cyclic", "1.0.0", "Cyclic pipeline",
		api.NewGraph().Successors(a, b).Successors(b, a), rec)
	if err != nil {
		t.Fatalf("NewPipelineWithObserver failed: %v", err)
	}

	if err := p.Run(ctx); err == nil {
		t.Fatal("expected CycleError")
	}

	// The run failed before it ever started; the recorder still makes
	// a failed record for it.
	runs, err := rec.ListRuns(ctx, api.RunListOptions{Pipeline: "cyclic"})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Status != api.StatusFailed {
		t.Fatalf("expected FAILED, got %s", runs[0].Status)
	}

	steps, err := rec.ListSteps(ctx, runs[0].ID)
	if err != nil {
		t.Fatalf("ListSteps failed: %v", err)
	}
	if len(steps) != 0 {
		t.Fatalf("expected no step records, got %d", len(steps))
	}
}

func TestRecorderAssignsSequentialRunIDs(t *testing.T) {
	ctx := context.Background()
	rec := NewRecorder(NewMemoryStore())

	s := mustStep(t, "only", func() error { return nil })
	p, err := api.NewPipelineWithObserver("etl", "1.0.0", "Recorded pipeline", api.Sequence(s), rec)
	if err != nil {
		t.Fatalf("NewPipelineWithObserver failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := p.Run(ctx); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}

	runs, err := rec.ListRuns(ctx, api.RunListOptions{})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, want := range []string{"run-1", "run-2", "run-3"} {
		if runs[i].ID != want {
			t.Fatalf("run %d: expected ID %s, got %s", i, want, runs[i].ID)
		}
	}
}

func TestRecorderGetMissingRun(t *testing.T) {
	rec := NewRecorder(NewMemoryStore())

	if _, err := rec.GetRun(context.Background(), "run-404"); err == nil {
		t.Fatal("expected error for missing run")
	}
}
