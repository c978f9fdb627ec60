package history

import (
	"errors"
	"testing"
	"time"

	"github.com/petrijr/stepline/pkg/api"
)

func TestMemoryStoreSaveGetUpdate(t *testing.T) {
	store := NewMemoryStore()

	rec := &api.RunRecord{
		ID:        "run-1",
		Pipeline:  "nightly-etl",
		Version:   "1.0.0",
		Status:    api.StatusRunning,
		StartedAt: time.Now(),
	}
	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Pipeline != "nightly-etl" || got.Status != api.StatusRunning {
		t.Fatalf("unexpected record: %+v", got)
	}

	rec.Status = api.StatusCompleted
	rec.FinishedAt = time.Now()
	if err := store.UpdateRun(rec); err != nil {
		t.Fatalf("UpdateRun failed: %v", err)
	}

	got, err = store.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun after update failed: %v", err)
	}
	if got.Status != api.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}
}

func TestMemoryStoreGetMissingRun(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.GetRun("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestMemoryStoreUpdateMissingRun(t *testing.T) {
	store := NewMemoryStore()

	err := store.UpdateRun(&api.RunRecord{ID: "nope"})
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestMemoryStoreListRunsFilters(t *testing.T) {
	store := NewMemoryStore()

	runs := []*api.RunRecord{
		{ID: "run-1", Pipeline: "etl", Status: api.StatusCompleted},
		{ID: "run-2", Pipeline: "etl", Status: api.StatusFailed},
		{ID: "run-3", Pipeline: "reports", Status: api.StatusCompleted},
	}
	for _, r := range runs {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	all, err := store.ListRuns(RunFilter{})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	// Insertion order is preserved.
	if all[0].ID != "run-1" || all[2].ID != "run-3" {
		t.Fatalf("unexpected listing order: %v, %v, %v", all[0].ID, all[1].ID, all[2].ID)
	}

	etl, err := store.ListRuns(RunFilter{Pipeline: "etl"})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(etl) != 2 {
		t.Fatalf("expected 2 etl runs, got %d", len(etl))
	}

	failed, err := store.ListRuns(RunFilter{Status: api.StatusFailed})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(failed) != 1 || failed[0].ID != "run-2" {
		t.Fatalf("unexpected failed runs: %+v", failed)
	}
}

func TestMemoryStoreStepsKeepInvocationOrder(t *testing.T) {
	store := NewMemoryStore()

	for i, name := range []string{"extract", "transform", "load"} {
		err := store.SaveStep(&api.StepRecord{
			RunID:   "run-1",
			Step:    name,
			Version: "1.0.0",
			Index:   i,
			Elapsed: time.Duration(i) * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("SaveStep failed: %v", err)
		}
	}

	steps, err := store.ListSteps("run-1")
	if err != nil {
		t.Fatalf("ListSteps failed: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	for i, name := range []string{"extract", "transform", "load"} {
		if steps[i].Step != name || steps[i].Index != i {
			t.Fatalf("step %d: expected %s, got %+v", i, name, steps[i])
		}
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()

	rec := &api.RunRecord{ID: "run-1", Pipeline: "etl", Status: api.StatusRunning}
	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	got.Status = api.StatusFailed

	again, err := store.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if again.Status != api.StatusRunning {
		t.Fatalf("store leaked a mutable reference: %+v", again)
	}
}
