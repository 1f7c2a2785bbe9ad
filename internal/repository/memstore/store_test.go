package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/strindex/internal/domain"
	"github.com/kailas-cloud/strindex/internal/domain/record"
)

func newRecord(t *testing.T, value string) record.Record {
	t.Helper()
	return record.New(value, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestStore_InsertAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec := newRecord(t, "hello")
	if err := s.Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.Get(ctx, rec.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Value() != "hello" {
		t.Errorf("value: got %q, want %q", got.Value(), "hello")
	}
}

func TestStore_InsertDuplicate_ConflictCarriesExistingID(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := newRecord(t, "hello")
	if err := s.Insert(ctx, first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := s.Insert(ctx, newRecord(t, "hello"))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate insert: got %v, want ErrAlreadyExists", err)
	}

	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatal("duplicate insert should return *ConflictError")
	}
	if ce.ExistingID != first.ID() {
		t.Errorf("existing id: got %s, want %s", ce.ExistingID, first.ID())
	}

	// First writer wins: the stored record is untouched.
	got, err := s.Get(ctx, first.ID())
	if err != nil {
		t.Fatalf("get after conflict: %v", err)
	}
	if !got.CreatedAt().Equal(first.CreatedAt()) {
		t.Error("conflicting insert must not overwrite the stored record")
	}
}

func TestStore_Get_Missing(t *testing.T) {
	s := New()

	_, err := s.Get(context.Background(), "deadbeef")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_Delete_SecondCallNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec := newRecord(t, "hello")
	if err := s.Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := s.Delete(ctx, rec.ID()); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.Delete(ctx, rec.ID()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteThenReinsert(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec := newRecord(t, "hello")
	if err := s.Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Delete(ctx, rec.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Insert(ctx, rec); err != nil {
		t.Errorf("reinsert after delete: %v", err)
	}
}

func TestStore_List_InsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	values := []string{"charlie", "alpha", "bravo"}
	for _, v := range values {
		if err := s.Insert(ctx, newRecord(t, v)); err != nil {
			t.Fatalf("insert %q: %v", v, err)
		}
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != len(values) {
		t.Fatalf("list length: got %d, want %d", len(recs), len(values))
	}
	for i, v := range values {
		if recs[i].Value() != v {
			t.Errorf("list[%d]: got %q, want %q", i, recs[i].Value(), v)
		}
	}
}

func TestStore_ConcurrentInserts(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Insert(ctx, newRecord(t, fmt.Sprintf("value-%d", i)))
		}(i)
	}
	wg.Wait()

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != n {
		t.Errorf("count after concurrent inserts: got %d, want %d", count, n)
	}
}
