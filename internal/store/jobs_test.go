package store

import (
	"errors"
	"testing"
	"time"
)

func TestJobLifecycle(t *testing.T) {
	s := newTestStore(t)

	started := time.Now().UTC()
	id, err := s.CreateJob(SyncJob{
		SourceSystem:  "claude",
		TargetSystems: []string{"cursor", "copilot"},
		ArtifactTypes: []string{"skill", "command"},
		DryRun:        false,
		Force:         true,
		UseSymlinks:   true,
		StartedAt:     started,
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	job, err := s.GetJob(id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if job.Status != JobRunning {
		t.Errorf("status = %s, want running", job.Status)
	}
	if len(job.TargetSystems) != 2 || job.TargetSystems[0] != "cursor" {
		t.Errorf("targets = %v", job.TargetSystems)
	}
	if len(job.ArtifactTypes) != 2 {
		t.Errorf("types = %v", job.ArtifactTypes)
	}
	if !job.Force || !job.UseSymlinks || job.DryRun {
		t.Errorf("flags = force:%v symlinks:%v dry:%v", job.Force, job.UseSymlinks, job.DryRun)
	}
	if job.CompletedAt != nil || job.Summary != nil {
		t.Error("running job should have no completion data")
	}

	sum := Summary{Total: 3, Created: 2, Skipped: 1}
	if err := s.CompleteJob(id, JobCompleted, &sum); err != nil {
		t.Fatalf("CompleteJob: %v", err)
	}

	job, err = s.GetJob(id)
	if err != nil {
		t.Fatal(err)
	}
	if job.Status != JobCompleted {
		t.Errorf("status = %s", job.Status)
	}
	if job.CompletedAt == nil {
		t.Error("completed job has no completion time")
	}
	if job.Summary == nil || job.Summary.Total != 3 || job.Summary.Created != 2 {
		t.Errorf("summary = %+v", job.Summary)
	}
}

func TestGetJobNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetJob(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListJobsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := s.CreateJob(SyncJob{
			SourceSystem:  "claude",
			TargetSystems: []string{"cursor"},
			StartedAt:     time.Now().UTC(),
		})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	jobs, err := s.ListJobs(2)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].ID != ids[2] || jobs[1].ID != ids[1] {
		t.Errorf("order = %d, %d; want %d, %d", jobs[0].ID, jobs[1].ID, ids[2], ids[1])
	}
}

func TestAppendAndListResults(t *testing.T) {
	s := newTestStore(t)

	jobID, err := s.CreateJob(SyncJob{
		SourceSystem:  "claude",
		TargetSystems: []string{"cursor"},
		StartedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}

	results := []SyncResult{
		{JobID: jobID, ArtifactID: "claude:skill:a", ArtifactName: "a", ArtifactType: "skill",
			SourceSystem: "claude", TargetSystem: "cursor", Operation: OpCreate, Success: true,
			SourcePath: ".claude/skills/a", TargetPath: ".cursor/rules/a.md"},
		{JobID: jobID, ArtifactID: "claude:skill:b", ArtifactName: "b", ArtifactType: "skill",
			SourceSystem: "claude", TargetSystem: "cursor", Operation: OpSkip, Success: false,
			Error: "boom", SourcePath: ".claude/skills/b"},
	}
	for _, r := range results {
		if err := s.AppendResult(r); err != nil {
			t.Fatalf("AppendResult: %v", err)
		}
	}

	got, err := s.ListResultsForJob(jobID)
	if err != nil {
		t.Fatalf("ListResultsForJob: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].ArtifactName != "a" || got[1].ArtifactName != "b" {
		t.Errorf("insertion order not preserved: %s, %s", got[0].ArtifactName, got[1].ArtifactName)
	}
	if !got[0].Success || got[0].Operation != OpCreate {
		t.Errorf("first result = %+v", got[0])
	}
	if got[1].Success || got[1].Error != "boom" {
		t.Errorf("second result = %+v", got[1])
	}
}

func TestSummaryAddAndString(t *testing.T) {
	var sum Summary
	sum.Add(Summary{Total: 2, Created: 1, Symlinked: 1})
	sum.Add(Summary{Total: 1, Failed: 1})

	if sum.Total != 3 || sum.Created != 1 || sum.Symlinked != 1 || sum.Failed != 1 {
		t.Errorf("sum = %+v", sum)
	}
	want := "3 total: 1 created, 0 updated, 1 symlinked, 0 skipped, 0 deleted, 1 failed"
	if sum.String() != want {
		t.Errorf("String = %q, want %q", sum.String(), want)
	}
}
