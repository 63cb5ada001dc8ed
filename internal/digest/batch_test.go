package digest

import (
	"fmt"
	"testing"

	"FeedDigest/internal/domain"
)

func numberedEntries(n int) []domain.Entry {
	entries := make([]domain.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, domain.Entry{ID: int64(i + 1), GUID: fmt.Sprintf("g%d", i+1)})
	}
	return entries
}

func TestMakeBatchesExactPartition(t *testing.T) {
	t.Parallel()

	batches, remainder := MakeBatches(numberedEntries(25), 10)

	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	for i, batch := range batches {
		if len(batch) != 10 {
			t.Fatalf("batch %d has %d entries, want 10", i, len(batch))
		}
	}
	if len(remainder) != 5 {
		t.Fatalf("expected remainder of 5, got %d", len(remainder))
	}

	// Left-to-right order is preserved across batches and remainder.
	if batches[0][0].ID != 1 || batches[1][0].ID != 11 || remainder[0].ID != 21 {
		t.Fatalf("unexpected partition order: %d %d %d",
			batches[0][0].ID, batches[1][0].ID, remainder[0].ID)
	}
}

func TestMakeBatchesInsufficient(t *testing.T) {
	t.Parallel()

	batches, remainder := MakeBatches(numberedEntries(3), 10)

	if len(batches) != 0 {
		t.Fatalf("expected no batches, got %d", len(batches))
	}
	if len(remainder) != 3 {
		t.Fatalf("expected all 3 entries in remainder, got %d", len(remainder))
	}
}

func TestMakeBatchesSizeOne(t *testing.T) {
	t.Parallel()

	batches, remainder := MakeBatches(numberedEntries(4), 1)

	if len(batches) != 4 {
		t.Fatalf("expected 4 batches, got %d", len(batches))
	}
	if len(remainder) != 0 {
		t.Fatalf("expected empty remainder, got %d", len(remainder))
	}
}

func TestMakeBatchesEmptyInput(t *testing.T) {
	t.Parallel()

	batches, remainder := MakeBatches(nil, 10)
	if len(batches) != 0 || len(remainder) != 0 {
		t.Fatalf("expected nothing, got %d batches and %d remainder", len(batches), len(remainder))
	}
}
