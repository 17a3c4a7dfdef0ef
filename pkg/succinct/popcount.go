//go:build !avo

package succinct

import (
	"log"
	"math/bits"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

var logCPUOnce sync.Once

// popcountWord counts set bits in a single 64-bit word. The default build
// uses the standard library's math/bits, which already lowers to a native
// POPCNT instruction on any CPU that has one; this is logged once so the
// chosen rank/select strategy is visible at startup.
func popcountWord(w uint64) int {
	logCPUOnce.Do(func() {
		if cpuid.CPU.Has(cpuid.POPCNT) {
			log.Println("metagraph succinct engine: POPCNT available, using hardware popcount for rank/select.")
		} else {
			log.Println("metagraph succinct engine: POPCNT unavailable, falling back to software popcount.")
		}
	})
	return bits.OnesCount64(w)
}
