// Command gen generates the optional AMD64 popcount kernel used by
// pkg/succinct's rank/select machinery when built with the "avo" build tag.
// This project does not check in a build-triggering go:generate invocation
// by default because the plain math/bits path is already
// hardware-accelerated on amd64; the generator exists so a maintainer can
// regenerate a hand-tuned kernel if profiling ever shows it's worth it.
package main

import (
	. "github.com/mmcloughlin/avo/build"
	. "github.com/mmcloughlin/avo/operand"
)

func main() {
	TEXT("PopcountWords", NOSPLIT, "func(words []uint64) uint64")
	Pragma("noescape")
	Doc("PopcountWords sums the population count of every word in words using POPCNT.")

	ptr := Load(Param("words").Base(), GP64())
	n := Load(Param("words").Len(), GP64())

	total := GP64()
	XORQ(total, total)

	Label("popcount_loop")
	CMPQ(n, Imm(0))
	JE(LabelRef("popcount_done"))

	word := GP64()
	MOVQ(Mem{Base: ptr}, word)

	count := GP64()
	POPCNTQ(word, count)
	ADDQ(count, total)

	ADDQ(Imm(8), ptr)
	SUBQ(Imm(1), n)
	JMP(LabelRef("popcount_loop"))

	Label("popcount_done")
	Store(total, ReturnIndex(0))
	RET()
}
