package report

import "testing"

func TestStore_MutateSwapsReference(t *testing.T) {
	r := New(Metadata{StudentName: "Durand", CompanyName: "Acme"})
	store := NewStore(r)

	before := store.Current()
	ok := store.Mutate(func(r *Report) bool {
		return SetStatus(r.Plan.Sections, "introduction", StatusInProgress)
	})
	if !ok {
		t.Fatal("expected mutation to apply")
	}

	after := store.Current()
	if before == after {
		t.Fatal("expected a new tree reference after mutation")
	}
	if Find(before.Plan.Sections, "introduction").Status != StatusNotStarted {
		t.Error("previous tree reference was mutated in place")
	}
	if Find(after.Plan.Sections, "introduction").Status != StatusInProgress {
		t.Error("mutation not visible on new reference")
	}
}

func TestStore_NoOpMutationKeepsReferenceAndRevision(t *testing.T) {
	store := NewStore(New(Metadata{}))
	before := store.Current()
	rev := store.Revision()

	ok := store.Mutate(func(r *Report) bool {
		return SetStatus(r.Plan.Sections, "missing-id", StatusCompleted)
	})
	if ok {
		t.Fatal("expected missing-id mutation to be a no-op")
	}
	if store.Current() != before {
		t.Error("no-op mutation swapped the tree reference")
	}
	if store.Revision() != rev {
		t.Error("no-op mutation bumped the revision")
	}
}

func TestStore_NotifiesSubscribers(t *testing.T) {
	store := NewStore(New(Metadata{}))

	var got *Report
	calls := 0
	store.Subscribe(func(r *Report) {
		got = r
		calls++
	})

	store.Mutate(func(r *Report) bool {
		return SetContent(r.Plan.Sections, "conclusion", "done")
	})

	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
	if got != store.Current() {
		t.Error("subscriber did not receive the new tree reference")
	}
}

func TestStore_ReplaceNotifies(t *testing.T) {
	store := NewStore(nil)
	calls := 0
	store.Subscribe(func(*Report) { calls++ })

	store.Replace(New(Metadata{StudentName: "Martin"}))

	if calls != 1 {
		t.Fatalf("expected notification on replace, got %d", calls)
	}
	if store.Current() == nil || store.Current().StudentName != "Martin" {
		t.Error("replace did not install the new report")
	}
}
