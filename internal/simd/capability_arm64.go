//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	// CNT is part of the base ASIMD extension.
	hasPopcnt = cpu.ARM64.HasASIMD
	initCapabilities()
}
