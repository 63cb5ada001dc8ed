package digest

import "FeedDigest/internal/domain"

// MakeBatches partitions entries left to right into contiguous groups of
// exactly size elements. The trailing remainder shorter than size is
// returned separately and stays unprocessed until a later run fills it up.
func MakeBatches(entries []domain.Entry, size int) ([][]domain.Entry, []domain.Entry) {
	if size < 1 {
		size = 1
	}

	full := len(entries) / size
	batches := make([][]domain.Entry, 0, full)
	for i := 0; i < full; i++ {
		batches = append(batches, entries[i*size:(i+1)*size])
	}

	return batches, entries[full*size:]
}
