//go:build avo && amd64

package succinct

// PopcountWords is implemented in the generated popcount_avo_amd64.s
// (produced by running `go generate` over pkg/succinct/gen). It is only
// linked in when built with -tags avo.
//
//go:generate go run ./gen -out ./popcount_avo_amd64.s -stubs ./popcount_avo_amd64.go
func PopcountWords(words []uint64) uint64

func popcountWord(w uint64) int {
	return int(PopcountWords([]uint64{w}))
}
