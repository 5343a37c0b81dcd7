package simd

import (
	"fmt"
	"math/bits"
	"math/rand"
	"testing"
)

// forEachISA runs fn once per available kernel.
func forEachISA(t *testing.T, fn func(t *testing.T)) {
	t.Helper()
	for _, isa := range []ISA{Generic, Hardware} {
		if !isISAAvailable(isa) {
			continue
		}
		t.Run(isa.String(), func(t *testing.T) {
			restore := ForceISA(isa)
			defer restore()
			fn(t)
		})
	}
}

func TestPopcount(t *testing.T) {
	tests := []struct {
		name string
		w    uint64
		want int
	}{
		{"Zero", 0, 0},
		{"One", 1, 1},
		{"High bit", 1 << 63, 1},
		{"All ones", ^uint64(0), 64},
		{"Alternating bits", 0x5555555555555555, 32},
		{"Nibbles", 0xF0F0F0F0F0F0F0F0, 32},
		{"Mixed", 0x8000000000000101, 3},
	}

	forEachISA(t, func(t *testing.T) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := Popcount(tt.w); got != tt.want {
					t.Errorf("got %d, want %d", got, tt.want)
				}
			})
		}
	})
}

func TestPopcountWords(t *testing.T) {
	tests := []struct {
		name  string
		words []uint64
		want  int
	}{
		{
			name:  "Empty",
			words: []uint64{},
			want:  0,
		},
		{
			name:  "All zeros",
			words: []uint64{0, 0, 0, 0},
			want:  0,
		},
		{
			name:  "All ones single word",
			words: []uint64{^uint64(0)},
			want:  64,
		},
		{
			name:  "All ones multiple words",
			words: []uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)},
			want:  256,
		},
		{
			name:  "Unrolled plus tail",
			words: []uint64{1, 1, 1, 1, 0xFF},
			want:  4 + 8,
		},
		{
			name:  "Mixed",
			words: []uint64{0xFF, 0x00, 0x0F, 0xF0},
			want:  8 + 0 + 4 + 4,
		},
	}

	forEachISA(t, func(t *testing.T) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := PopcountWords(tt.words); got != tt.want {
					t.Errorf("got %d, want %d", got, tt.want)
				}
			})
		}
	})
}

func TestPopcountPrefix(t *testing.T) {
	const w = uint64(0xAAAAAAAAAAAAAAAA) // odd bits set

	forEachISA(t, func(t *testing.T) {
		for n := uint(0); n <= 64; n++ {
			if got, want := PopcountPrefix(w, n), int(n/2); got != want {
				t.Errorf("n=%d: got %d, want %d", n, got, want)
			}
		}

		if got := PopcountPrefix(^uint64(0), 0); got != 0 {
			t.Errorf("n=0 on all ones: got %d, want 0", got)
		}
		if got := PopcountPrefix(^uint64(0), 64); got != 64 {
			t.Errorf("n=64 on all ones: got %d, want 64", got)
		}
	})
}

func TestPrefixPopcounts(t *testing.T) {
	forEachISA(t, func(t *testing.T) {
		t.Run("Empty", func(t *testing.T) {
			got := PrefixPopcounts(nil, nil)
			if len(got) != 1 || got[0] != 0 {
				t.Errorf("got %v, want [0]", got)
			}
		})

		t.Run("Known", func(t *testing.T) {
			words := []uint64{0xFF, 0, ^uint64(0), 0x1}
			want := []int{0, 8, 8, 72, 73}
			got := PrefixPopcounts(nil, words)
			if len(got) != len(want) {
				t.Fatalf("len = %d, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
				}
			}
		})

		t.Run("ReusesBuffer", func(t *testing.T) {
			buf := make([]int, 0, 16)
			got := PrefixPopcounts(buf, []uint64{1, 3})
			if &got[0] != &buf[:1][0] {
				t.Error("expected dst backing array to be reused")
			}
			if got[2] != 3 {
				t.Errorf("got %d, want 3", got[2])
			}
		})

		t.Run("GrowsBuffer", func(t *testing.T) {
			got := PrefixPopcounts(make([]int, 1), []uint64{1, 1, 1})
			if len(got) != 4 || got[3] != 3 {
				t.Errorf("got %v, want [0 1 2 3]", got)
			}
		})
	})
}

// Test equivalence between hardware and generic implementations
func TestPopcount_Equivalence(t *testing.T) {
	sizes := []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 31, 32, 33, 63, 64, 65, 128, 256}

	rng := rand.New(rand.NewSource(42))

	for _, size := range sizes {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			words := make([]uint64, size)
			want := 0
			for i := range words {
				words[i] = rng.Uint64()
				want += bits.OnesCount64(words[i])
			}

			if got := popcountWordsGeneric(words); got != want {
				t.Errorf("generic: got %d, want %d", got, want)
			}
			if got := popcountWordsHardware(words); got != want {
				t.Errorf("hardware: got %d, want %d", got, want)
			}
			for i, w := range words {
				if popcountGeneric(w) != popcountHardware(w) {
					t.Errorf("index %d: generic %d != hardware %d", i, popcountGeneric(w), popcountHardware(w))
				}
			}
		})
	}
}

func BenchmarkPopcountWords(b *testing.B) {
	words := make([]uint64, 1024)
	rng := rand.New(rand.NewSource(1))
	for i := range words {
		words[i] = rng.Uint64()
	}

	for _, isa := range []ISA{Generic, Hardware} {
		if !isISAAvailable(isa) {
			continue
		}
		b.Run(isa.String(), func(b *testing.B) {
			restore := ForceISA(isa)
			defer restore()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = PopcountWords(words)
			}
		})
	}
}

func BenchmarkPrefixPopcounts(b *testing.B) {
	words := make([]uint64, 1024)
	rng := rand.New(rand.NewSource(1))
	for i := range words {
		words[i] = rng.Uint64()
	}
	dst := make([]int, len(words)+1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = PrefixPopcounts(dst, words)
	}
}
