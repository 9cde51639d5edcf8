package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aicsync-labs/aicsync/internal/artifact"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenStampsSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	v, err := s.GetSetting("schema_version")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != schemaVersion {
		t.Errorf("schema_version = %q, want %q", v, schemaVersion)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening an existing store must succeed.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s.Close()
}

func TestOpenRejectsNewerMajorSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("schema_version", "99.0.0"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, err := Open(path); err == nil {
		t.Error("expected error opening store with newer schema")
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetSetting("last_sync"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unset key error = %v, want ErrNotFound", err)
	}
	if err := s.SetSetting("last_sync", "2026-08-25T10:00:00Z"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("last_sync", "2026-08-25T11:00:00Z"); err != nil {
		t.Fatal(err)
	}

	v, err := s.GetSetting("last_sync")
	if err != nil {
		t.Fatal(err)
	}
	if v != "2026-08-25T11:00:00Z" {
		t.Errorf("last_sync = %q", v)
	}
}

func sampleArtifact(name string, typ artifact.Type) artifact.Artifact {
	return artifact.Artifact{
		ID:           artifact.MakeID("claude", typ, name),
		Name:         name,
		Type:         typ,
		Description:  "desc of " + name,
		ContentHash:  artifact.HashBytes([]byte(name)),
		SourceSystem: "claude",
		SourcePath:   ".claude/" + name,
	}
}

func TestUpsertAndGetArtifact(t *testing.T) {
	s := newTestStore(t)

	a := sampleArtifact("code-review", artifact.TypeSkill)
	a.Metadata = map[string]string{"version": "1.0.0"}
	if err := s.UpsertArtifact(a); err != nil {
		t.Fatalf("UpsertArtifact: %v", err)
	}

	got, err := s.GetArtifact(a.ID)
	if err != nil {
		t.Fatalf("GetArtifact: %v", err)
	}
	if got.Name != a.Name || got.Type != a.Type || got.ContentHash != a.ContentHash {
		t.Errorf("round trip = %+v", got)
	}
	if got.Metadata["version"] != "1.0.0" {
		t.Errorf("metadata = %v", got.Metadata)
	}

	// Upsert with a new hash replaces in place.
	a.ContentHash = artifact.HashBytes([]byte("changed"))
	if err := s.UpsertArtifact(a); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetArtifact(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ContentHash != a.ContentHash {
		t.Error("upsert did not refresh the content hash")
	}

	if _, err := s.GetArtifact("claude:skill:absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing artifact error = %v, want ErrNotFound", err)
	}
}

func TestListArtifacts(t *testing.T) {
	s := newTestStore(t)

	for _, a := range []artifact.Artifact{
		sampleArtifact("zeta", artifact.TypeCommand),
		sampleArtifact("alpha", artifact.TypeCommand),
		sampleArtifact("review", artifact.TypeSkill),
	} {
		if err := s.UpsertArtifact(a); err != nil {
			t.Fatal(err)
		}
	}
	other := sampleArtifact("other", artifact.TypeCommand)
	other.ID = artifact.MakeID("cursor", artifact.TypeCommand, "other")
	other.SourceSystem = "cursor"
	if err := s.UpsertArtifact(other); err != nil {
		t.Fatal(err)
	}

	all, err := s.ListArtifacts("claude", nil)
	if err != nil {
		t.Fatalf("ListArtifacts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d artifacts, want 3", len(all))
	}
	// Ordered by (type, name): commands before skills, alpha before zeta.
	if all[0].Name != "alpha" || all[1].Name != "zeta" || all[2].Name != "review" {
		t.Errorf("order = %s, %s, %s", all[0].Name, all[1].Name, all[2].Name)
	}

	commands, err := s.ListArtifacts("claude", []artifact.Type{artifact.TypeCommand})
	if err != nil {
		t.Fatal(err)
	}
	if len(commands) != 2 {
		t.Errorf("filtered list = %d rows, want 2", len(commands))
	}
}

func TestSyncStateLifecycle(t *testing.T) {
	s := newTestStore(t)

	a := sampleArtifact("deploy", artifact.TypeCommand)
	if err := s.UpsertArtifact(a); err != nil {
		t.Fatal(err)
	}

	st := SyncState{
		ArtifactID:   a.ID,
		TargetSystem: "cursor",
		TargetPath:   ".cursor/rules/deploy.md",
		SyncMethod:   MethodCopy,
		SyncedHash:   a.ContentHash,
		LastSyncedAt: time.Now().UTC(),
		Status:       StateSynced,
	}
	if err := s.UpsertSyncState(st); err != nil {
		t.Fatalf("UpsertSyncState: %v", err)
	}

	got, err := s.GetSyncState(a.ID, "cursor")
	if err != nil {
		t.Fatalf("GetSyncState: %v", err)
	}
	if got.SyncedHash != st.SyncedHash || got.Status != StateSynced || got.TargetPath != st.TargetPath {
		t.Errorf("round trip = %+v", got)
	}

	// A second upsert for the same pair replaces, not duplicates.
	st.Status = StateFailed
	st.ErrorMessage = "disk full"
	if err := s.UpsertSyncState(st); err != nil {
		t.Fatal(err)
	}
	list, err := s.ListSyncStateForTarget("cursor")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d rows, want 1", len(list))
	}
	if list[0].Status != StateFailed || list[0].ErrorMessage != "disk full" {
		t.Errorf("updated row = %+v", list[0])
	}

	if err := s.DeleteSyncState(a.ID, "cursor"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetSyncState(a.ID, "cursor"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted pair error = %v, want ErrNotFound", err)
	}
}

func TestHasSyncedPath(t *testing.T) {
	s := newTestStore(t)

	a := sampleArtifact("review", artifact.TypeSkill)
	if err := s.UpsertArtifact(a); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertSyncState(SyncState{
		ArtifactID: a.ID, TargetSystem: "cursor", TargetPath: ".cursor/rules/review.md",
		SyncMethod: MethodCopy, Status: StateSynced, LastSyncedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatal(err)
	}

	managed, err := s.HasSyncedPath("cursor", ".cursor/rules/review.md")
	if err != nil {
		t.Fatal(err)
	}
	if !managed {
		t.Error("recorded path not reported as managed")
	}

	managed, err = s.HasSyncedPath("cursor", ".cursor/rules/native.md")
	if err != nil {
		t.Fatal(err)
	}
	if managed {
		t.Error("unknown path reported as managed")
	}

	// Same path under a different target system is a different claim.
	managed, err = s.HasSyncedPath("codex", ".cursor/rules/review.md")
	if err != nil {
		t.Fatal(err)
	}
	if managed {
		t.Error("path managed for another target reported as managed")
	}
}

func TestCountSyncedForTarget(t *testing.T) {
	s := newTestStore(t)

	for i, name := range []string{"a", "b", "c"} {
		art := sampleArtifact(name, artifact.TypeCommand)
		if err := s.UpsertArtifact(art); err != nil {
			t.Fatal(err)
		}
		status := StateSynced
		if i == 2 {
			status = StateFailed
		}
		if err := s.UpsertSyncState(SyncState{
			ArtifactID: art.ID, TargetSystem: "cursor", TargetPath: name,
			SyncMethod: MethodCopy, Status: status, LastSyncedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.CountSyncedForTarget("cursor")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2 (failed rows excluded)", n)
	}
}
