// Package bitvec provides a fixed-size bit vector with cached rank queries,
// a building block for succinct data structures.
//
// # Layout
//
// Bits are packed into 64-bit words:
//
//	┌──────────────────┬──────────────────┬─────────────────────┐
//	│  Word 0 (uint64) │  Word 1 (uint64) │  Word 2 (uint64)    │
//	│  bits [0,63]     │  bits [64,127]   │  bits [128,size)+pad│
//	└──────────────────┴──────────────────┴─────────────────────┘
//
// Bit i lives in word i/64 at offset i%64 (offset 0 is the least-significant
// bit). Padding bits past the capacity are always zero and never counted.
//
// # Rank Table
//
// Rank1(i) counts the set bits in [0, i). It is answered in O(1) from a
// prefix-sum table over per-word popcounts plus a masked popcount of the
// partial word:
//
//	rank1(i) = ranks[i/64] + popcount(words[i/64] & (1<<(i%64) - 1))
//
// The table is built lazily by the first rank query and dropped by every
// Set, so a workload that mutates rarely and queries often pays the O(words)
// build once. A workload that mutates before every query degrades to
// O(words) per query.
//
// # Errors
//
// Indices are never clamped. Get and Set accept [0, Len()), Rank0 and Rank1
// accept [0, Len()]. Anything else returns an *IndexError matching
// ErrOutOfRange, and leaves the vector untouched.
//
// # Concurrency
//
// BitVector is single-threaded: a rank query may write the table, so even
// concurrent readers race. Use SyncBitVector or serialize access externally.
//
// # Example Usage
//
//	bv, err := bitvec.New(100)
//	if err != nil {
//	    return err
//	}
//	for i := 1; i < 100; i += 2 {
//	    _ = bv.Set(i, true)
//	}
//	r, _ := bv.Rank1(7) // 3
package bitvec
