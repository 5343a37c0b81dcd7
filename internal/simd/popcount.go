package simd

import "math/bits"

// ==============================================================================
// Popcount Kernels
// ==============================================================================
//
// These operations back the rank table of bitvec.BitVector. They operate on
// []uint64 words and are dispatched through function pointers so the active
// ISA is decided once at init.

// Kernel function pointers for popcount operations.
// Generic implementations are the default; initCapabilities overrides them
// with the hardware versions when available.
var (
	kernelPopcount      = popcountGeneric
	kernelPopcountWords = popcountWordsGeneric
)

// setKernels installs the kernels for the given ISA.
func setKernels(isa ISA) {
	switch isa {
	case Hardware:
		kernelPopcount = popcountHardware
		kernelPopcountWords = popcountWordsHardware
	default:
		kernelPopcount = popcountGeneric
		kernelPopcountWords = popcountWordsGeneric
	}
}

// ForceISA switches the active kernels to isa and returns a function that
// restores the previous selection. Unavailable ISAs fall back to Generic.
// Not safe for concurrent use with the kernels; intended for tests and benchmarks.
func ForceISA(isa ISA) (restore func()) {
	prev := activeISA
	if !isISAAvailable(isa) {
		isa = Generic
	}
	activeISA = isa
	setKernels(isa)
	return func() {
		activeISA = prev
		setKernels(prev)
	}
}

// Popcount returns the number of set bits in w.
func Popcount(w uint64) int {
	return kernelPopcount(w)
}

// PopcountPrefix returns the number of set bits among the n least-significant
// bits of w. n must be in [0, 64]; n == 0 yields 0 and n == 64 counts the whole word.
func PopcountPrefix(w uint64, n uint) int {
	// For n == 64 the shift yields 0 and the mask wraps to all ones.
	mask := (uint64(1) << n) - 1
	return kernelPopcount(w & mask)
}

// PopcountWords counts all set bits across words.
func PopcountWords(words []uint64) int {
	return kernelPopcountWords(words)
}

// PrefixPopcounts fills a prefix-sum table of per-word popcounts:
// out[0] = 0 and out[k] = out[k-1] + popcount(words[k-1]).
// dst is reused when it has enough capacity; the returned slice has
// length len(words)+1.
func PrefixPopcounts(dst []int, words []uint64) []int {
	n := len(words) + 1
	if cap(dst) < n {
		dst = make([]int, n)
	}
	dst = dst[:n]

	dst[0] = 0
	for k, w := range words {
		dst[k+1] = dst[k] + kernelPopcount(w)
	}
	return dst
}

// ==============================================================================
// Hardware implementations
// ==============================================================================

// math/bits.OnesCount64 is an intrinsic that lowers to POPCNT/CNT.
func popcountHardware(w uint64) int {
	return bits.OnesCount64(w)
}

func popcountWordsHardware(words []uint64) int {
	count := 0
	// Process 4 words at a time
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += bits.OnesCount64(words[i])
		count += bits.OnesCount64(words[i+1])
		count += bits.OnesCount64(words[i+2])
		count += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		count += bits.OnesCount64(words[i])
	}
	return count
}

// ==============================================================================
// Generic implementations
// ==============================================================================

// popcountGeneric is the SWAR Hamming weight.
func popcountGeneric(w uint64) int {
	w -= (w >> 1) & 0x5555555555555555
	w = (w & 0x3333333333333333) + ((w >> 2) & 0x3333333333333333)
	w = (w + (w >> 4)) & 0x0F0F0F0F0F0F0F0F
	return int((w * 0x0101010101010101) >> 56)
}

func popcountWordsGeneric(words []uint64) int {
	count := 0
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += popcountGeneric(words[i])
		count += popcountGeneric(words[i+1])
		count += popcountGeneric(words[i+2])
		count += popcountGeneric(words[i+3])
	}
	for ; i < len(words); i++ {
		count += popcountGeneric(words[i])
	}
	return count
}
