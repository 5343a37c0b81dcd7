package bitvec

import "sync"

// SyncBitVector is a BitVector guarded by a read-write mutex.
//
// Get and rank queries against a built rank table proceed under the read
// lock. Set, and a rank query that finds the table invalidated, take the
// write lock. The wrapped BitVector itself stays lock-free.
type SyncBitVector struct {
	mu sync.RWMutex
	bv *BitVector
}

// NewSync creates a SyncBitVector addressing size bits, all initially zero.
func NewSync(size int, optFns ...Option) (*SyncBitVector, error) {
	bv, err := New(size, optFns...)
	if err != nil {
		return nil, err
	}
	return &SyncBitVector{bv: bv}, nil
}

// Len returns the number of addressable bits.
func (s *SyncBitVector) Len() int {
	// size is immutable.
	return s.bv.Len()
}

// Get reports whether bit i is set.
func (s *SyncBitVector) Get(i int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bv.Get(i)
}

// Set sets bit i to value.
func (s *SyncBitVector) Set(i int, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bv.Set(i, value)
}

// Rank1 returns the number of set bits in [0, i).
func (s *SyncBitVector) Rank1(i int) (int, error) {
	return s.rank("rank1", i)
}

// Rank0 returns the number of unset bits in [0, i).
func (s *SyncBitVector) Rank0(i int) (int, error) {
	r, err := s.rank("rank0", i)
	if err != nil {
		return 0, err
	}
	return i - r, nil
}

// Count returns the total number of set bits.
func (s *SyncBitVector) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Count never builds the rank table, so the read lock suffices.
	return s.bv.Count()
}

// rank returns rank1(i), building the table under the write lock if needed.
func (s *SyncBitVector) rank(op string, i int) (int, error) {
	s.mu.RLock()
	if err := s.bv.checkRank(op, i); err != nil {
		s.mu.RUnlock()
		return 0, err
	}
	if s.bv.ranksValid {
		r := s.bv.rank1Cached(i)
		s.mu.RUnlock()
		s.bv.metrics.RecordRank(true)
		return r, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another writer may have rebuilt or invalidated the table in between;
	// rank1 handles both.
	return s.bv.rank1(i), nil
}
