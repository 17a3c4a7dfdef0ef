package construct

import "github.com/michalkowalski94/metagraph/pkg/alphabet"

// SuffixLength picks ell = ceil(log_{sigma-1}(nsplits)), capped by k-1, per
// step 1. sigma-1 excludes the sentinel from the suffix alphabet
// since real sequence data never contains '$' in its interior.
func SuffixLength(k, nsplits int) int {
	if nsplits <= 1 {
		return 0
	}
	base := alphabet.Size - 1
	ell := 0
	count := 1
	for count < nsplits {
		count *= base
		ell++
	}
	if ell > k-1 {
		ell = k - 1
	}
	if ell < 0 {
		ell = 0
	}
	return ell
}

// Suffixes enumerates every length-ell string over {A,C,G,T} in
// lexicographic order, the suffix buckets step 1 partitions
// (k+1)-mers into.
func Suffixes(ell int) []string {
	if ell == 0 {
		return []string{""}
	}
	alphabetChars := []byte{'A', 'C', 'G', 'T'}
	total := 1
	for i := 0; i < ell; i++ {
		total *= len(alphabetChars)
	}
	out := make([]string, total)
	buf := make([]byte, ell)
	var rec func(pos, idx int) int
	rec = func(pos, idx int) int {
		if pos == ell {
			out[idx] = string(buf)
			return idx + 1
		}
		for _, c := range alphabetChars {
			buf[pos] = c
			idx = rec(pos+1, idx)
		}
		return idx
	}
	rec(0, 0)
	return out
}
