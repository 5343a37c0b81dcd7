package simd

import (
	"os"
	"strings"
)

// ISA represents the popcount instruction path selected for this process.
type ISA uint8

const (
	// Generic represents the portable SWAR implementation (no popcount instruction).
	Generic ISA = iota
	// Hardware represents a native population count instruction
	// (POPCNT on x86-64, CNT on ARM64 ASIMD).
	Hardware
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case Hardware:
		return "hardware"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "hardware":
		return Hardware, true
	default:
		return Generic, false
	}
}

// EnvOverride is the environment variable consulted at init to force an ISA.
const EnvOverride = "BITVEC_SIMD"

// Package-level state - initialized once at package init.
var (
	// activeISA is the selected popcount implementation.
	activeISA ISA

	// hasOverride is true if BITVEC_SIMD was set to a valid, available ISA.
	hasOverride bool

	// hasPopcnt is set by the platform-specific init.
	hasPopcnt bool
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	activeISA = selectISA(os.Getenv(EnvOverride))
	setKernels(activeISA)
}

// selectISA resolves the override (if any) against the detected features.
func selectISA(override string) ISA {
	hasOverride = false
	if override != "" {
		if isa, ok := ParseISA(override); ok && isISAAvailable(isa) {
			hasOverride = true
			return isa
		}
		// Invalid or unavailable override - fall through to auto-detection
	}
	if hasPopcnt {
		return Hardware
	}
	return Generic
}

// isISAAvailable checks if an ISA is supported on this CPU.
func isISAAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case Hardware:
		return hasPopcnt
	default:
		return false
	}
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if BITVEC_SIMD selected the active ISA.
func IsOverridden() bool {
	return hasOverride
}

// HasPopcnt returns true if the CPU exposes a native popcount instruction.
func HasPopcnt() bool {
	return hasPopcnt
}
