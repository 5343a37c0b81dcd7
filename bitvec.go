package bitvec

import (
	"context"
	"math"
	"time"

	"github.com/hupe1980/bitvec/internal/simd"
)

// WordBits is the number of bits per word.
const WordBits = 64

// MaxLen is the largest capacity New accepts. It keeps the word array within
// the runtime's allocation limit (1<<48 bytes on 64-bit platforms) and leaves
// headroom so Len()+1 never overflows.
const MaxLen = min(1<<51, math.MaxInt-WordBits)

// wordIndex returns the word that holds bit i.
func wordIndex(i int) int { return i / WordBits }

// bitIndex returns the offset of bit i within its word.
func bitIndex(i int) uint { return uint(i % WordBits) }

// BitVector is a fixed-size bit vector with cached rank queries.
//
// Bits are packed into 64-bit words: bit i lives in word i/64 at offset i%64,
// offset 0 being the least-significant bit. Padding bits past Len() in the
// last word are always zero.
//
// Rank queries are answered from a prefix-sum table over per-word popcounts.
// The table is built lazily by the first rank query and dropped by every Set,
// so workloads that mutate rarely pay the O(words) build once.
//
// A BitVector is not safe for concurrent use; see SyncBitVector.
type BitVector struct {
	// words is the packed bit storage.
	words []uint64

	// ranks[k] is the number of set bits in words[0:k]. Only meaningful
	// while ranksValid is true; the backing array is reused across rebuilds.
	ranks      []int
	ranksValid bool

	// size is the capacity in bits, immutable after New.
	size int

	logger  *Logger
	metrics MetricsCollector
}

// New creates a BitVector addressing size bits, all initially zero.
// A size outside [0, MaxLen] returns an error matching ErrOutOfRange.
func New(size int, optFns ...Option) (*BitVector, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if size < 0 || size > MaxLen {
		err := &IndexError{Op: "new", Index: size, Limit: MaxLen + 1}
		opts.metrics.RecordOutOfRange(err.Op)
		opts.logger.LogOutOfRange(context.Background(), err)
		return nil, err
	}

	numWords := size / WordBits
	if size%WordBits != 0 {
		numWords++
	}

	return &BitVector{
		words:   make([]uint64, numWords),
		size:    size,
		logger:  opts.logger.WithCapacity(size),
		metrics: opts.metrics,
	}, nil
}

// MustNew is like New but panics if size is out of range.
func MustNew(size int, optFns ...Option) *BitVector {
	bv, err := New(size, optFns...)
	if err != nil {
		panic(err)
	}
	return bv
}

// Len returns the number of addressable bits.
func (bv *BitVector) Len() int {
	return bv.size
}

// WordCount returns the number of backing words, ceil(Len()/64).
func (bv *BitVector) WordCount() int {
	return len(bv.words)
}

// Get reports whether bit i is set. i must be in [0, Len()).
func (bv *BitVector) Get(i int) (bool, error) {
	if err := bv.checkIndex("get", i); err != nil {
		return false, err
	}
	return bv.words[wordIndex(i)]&(uint64(1)<<bitIndex(i)) != 0, nil
}

// Set sets bit i to value. i must be in [0, Len()).
// Every successful Set drops the rank table, including no-op writes.
func (bv *BitVector) Set(i int, value bool) error {
	if err := bv.checkIndex("set", i); err != nil {
		return err
	}

	mask := uint64(1) << bitIndex(i)
	if value {
		bv.words[wordIndex(i)] |= mask
	} else {
		bv.words[wordIndex(i)] &^= mask
	}
	bv.invalidate()
	return nil
}

// Rank1 returns the number of set bits in [0, i). i must be in [0, Len()];
// Rank1(Len()) is the total population count.
func (bv *BitVector) Rank1(i int) (int, error) {
	if err := bv.checkRank("rank1", i); err != nil {
		return 0, err
	}
	return bv.rank1(i), nil
}

// Rank0 returns the number of unset bits in [0, i). i must be in [0, Len()].
func (bv *BitVector) Rank0(i int) (int, error) {
	if err := bv.checkRank("rank0", i); err != nil {
		return 0, err
	}
	return i - bv.rank1(i), nil
}

// Count returns the total number of set bits. It reads the rank table when
// built and otherwise scans the words without building it. Count is not a
// rank query and is not reported to MetricsCollector.RecordRank.
func (bv *BitVector) Count() int {
	if bv.ranksValid {
		return bv.ranks[len(bv.words)]
	}
	return simd.PopcountWords(bv.words)
}

// Words returns a copy of the packed words.
func (bv *BitVector) Words() []uint64 {
	out := make([]uint64, len(bv.words))
	copy(out, bv.words)
	return out
}

// Ranks returns a copy of the rank table, building it if needed.
// The result has WordCount()+1 entries; entry k counts the set bits in words [0, k).
func (bv *BitVector) Ranks() []int {
	bv.ensureRanks()
	out := make([]int, len(bv.ranks))
	copy(out, bv.ranks)
	return out
}

// CacheValid reports whether the rank table is currently built.
func (bv *BitVector) CacheValid() bool {
	return bv.ranksValid
}

// rank1 assumes 0 <= i <= size.
func (bv *BitVector) rank1(i int) int {
	hit := bv.ranksValid
	bv.ensureRanks()
	bv.metrics.RecordRank(hit)
	return bv.rank1Cached(i)
}

// rank1Cached reads the rank table without building it.
// Callers must ensure the table is valid and 0 <= i <= size.
func (bv *BitVector) rank1Cached(i int) int {
	wi, bi := wordIndex(i), bitIndex(i)
	if bi == 0 {
		// Word boundary, including i == size on a word-aligned capacity
		// where words[wi] does not exist.
		return bv.ranks[wi]
	}
	return bv.ranks[wi] + simd.PopcountPrefix(bv.words[wi], bi)
}

// ensureRanks rebuilds the rank table if it was invalidated.
func (bv *BitVector) ensureRanks() {
	if bv.ranksValid {
		return
	}

	start := time.Now()
	bv.ranks = simd.PrefixPopcounts(bv.ranks, bv.words)
	bv.ranksValid = true
	elapsed := time.Since(start)

	bv.metrics.RecordRebuild(len(bv.words), elapsed)
	bv.logger.LogRebuild(context.Background(), len(bv.words), bv.ranks[len(bv.words)], elapsed)
}

func (bv *BitVector) invalidate() {
	bv.ranksValid = false
	bv.metrics.RecordInvalidation()
}

// checkIndex validates a get/set index against [0, size).
func (bv *BitVector) checkIndex(op string, i int) error {
	if i >= 0 && i < bv.size {
		return nil
	}
	return bv.reject(&IndexError{Op: op, Index: i, Limit: bv.size})
}

// checkRank validates a rank index against [0, size].
func (bv *BitVector) checkRank(op string, i int) error {
	if i >= 0 && i <= bv.size {
		return nil
	}
	return bv.reject(&IndexError{Op: op, Index: i, Limit: bv.size + 1})
}

func (bv *BitVector) reject(err *IndexError) error {
	bv.metrics.RecordOutOfRange(err.Op)
	bv.logger.LogOutOfRange(context.Background(), err)
	return err
}
