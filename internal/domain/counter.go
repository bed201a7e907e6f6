package domain

// SequenceCounter is the allocator state for one (branch, year) key.
// LastNumber is monotonically non-decreasing and values are never reused.
// Counters are created lazily on first allocation and never deleted.
type SequenceCounter struct {
	BranchID   string
	Year       int
	LastNumber int
}
