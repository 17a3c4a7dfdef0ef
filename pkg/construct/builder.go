// Package construct implements a chunked, parallel construction pipeline:
// suffix-bucketed k-mer extraction feeding a sorted, deduplicated
// collector per bucket, assembled into a STAT BOSS graph bucket by bucket.
// Parallelism is strictly within one suffix pass; passes themselves run
// serially to bound peak memory.
package construct

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/boss"
	"github.com/michalkowalski94/metagraph/pkg/ingest"
	"github.com/michalkowalski94/metagraph/pkg/logging"
	"github.com/michalkowalski94/metagraph/pkg/metrics"
	"github.com/michalkowalski94/metagraph/pkg/workerpool"
)

// Build drains src once, then runs the suffix-bucketed pipeline: for each
// suffix bucket (processed serially), extract matching (k+1)-mers from
// every sequence in parallel across opts.Parallel workers, sort+deduplicate
// via the btree-backed collector, then fold the bucket's edges into the
// graph in ascending packed-integer order before moving to the next
// suffix. The result is switched to STAT before being returned.
//
// Draining src once (rather than re-opening the underlying files per
// suffix pass, as the reference algorithm's outer loop does) is a
// deliberate simplification: it treats file I/O as an out-of-scope
// collaborator, and pkg/ingest.Source already hands back fully-materialised
// Sequence values, so a second pass over the same in-memory slice is
// equivalent to re-reading the file and needs no separate code path.
func Build(src ingest.Source, opts Options, jm *JobManager, logger logging.Logger) (*boss.Graph, error) {
	if logger == nil {
		logger = logging.Discard
	}
	if jm == nil {
		jm = NewJobManager()
	}
	seqs, err := ingest.Drain(src)
	if err != nil {
		return nil, errors.Wrap(err, "construct: reading input sequences")
	}

	ell := SuffixLength(opts.K, opts.NumSplits)
	suffixes := Suffixes(ell)

	workers := opts.Parallel
	if workers < 1 {
		workers = 1
	}
	pool := workerpool.New(workers, workers*5)
	defer pool.Join()

	g := boss.NewGraph(opts.K)

	for idx, u := range suffixes {
		if !opts.ownsSuffix(idx) {
			continue
		}
		job := jm.NewJob(fmt.Sprintf("suffix %d/%d (%q)", idx+1, len(suffixes), u))
		job.SetStatus(JobRunning)

		col := newCollector(opts.MemCapBytes)
		if err := extractBucket(pool, col, seqs, opts, u); err != nil {
			job.Fail(err)
			return nil, err
		}

		packed := col.Sorted()
		for _, p := range packed {
			kmer := alphabet.Unpack(p, opts.K+1)
			if err := g.InsertEdge(kmer); err != nil {
				job.Fail(err)
				return nil, errors.Wrap(err, "construct: folding bucket into graph")
			}
		}
		metrics.EdgesIngested.WithLabelValues(suffixLabel(u)).Add(float64(len(packed)))
		job.SetStatus(JobCompleted)
		logger.WithFields(logging.Fields{
			"suffix": u, "kmers": len(packed), "part_idx": opts.PartIdx,
		}).Infof("suffix bucket assembled")
	}

	if err := g.SwitchState(boss.StateStat); err != nil {
		return nil, errors.Wrap(err, "construct: switching to STAT")
	}
	return g, nil
}

func suffixLabel(u string) string {
	if u == "" {
		return "(none)"
	}
	return u
}

// extractBucket fans sequence extraction for suffix u out across pool's
// workers, each pushing matching (k+1)-mers into col. One goroutine per
// sequence is enqueued; the memory-cap checkpoint inside collector.Add is
// what bounds the in-flight working set, not the fan-out width.
func extractBucket(pool *workerpool.Pool, col *collector, seqs []ingest.Sequence, opts Options, u string) error {
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for _, seq := range seqs {
		wg.Add(1)
		s := seq
		pool.Enqueue(func() {
			defer wg.Done()
			if err := extractSequence(col, s.Data, opts, u); err != nil {
				once.Do(func() { firstErr = err })
			}
		})
	}
	wg.Wait()
	return firstErr
}

// extractSequence generates every (k+1)-mer seq (and its reverse
// complement, when requested or when the graph is canonical) contributes
// — dummy source edges included, via boss.PaddedKPlus1Mers — pushing
// every window whose last ell symbols equal u into col.
func extractSequence(col *collector, seq string, opts Options, u string) error {
	if len(seq) == 0 {
		return nil
	}
	if err := extractStrand(col, seq, opts.K, u); err != nil {
		return err
	}
	if opts.ReverseComplement || opts.Canonical {
		if alphabet.IsValidDNA(seq) {
			if err := extractStrand(col, alphabet.ReverseComplement(seq), opts.K, u); err != nil {
				return err
			}
		}
	}
	return nil
}

func extractStrand(col *collector, s string, k int, u string) error {
	ell := len(u)
	for _, kmer := range boss.PaddedKPlus1Mers(s, k) {
		real := strings.TrimLeft(kmer, "$")
		if !alphabet.IsValidDNA(real) {
			continue
		}
		if ell > 0 && kmer[len(kmer)-ell:] != u {
			continue
		}
		if err := col.Add(alphabet.Pack(kmer)); err != nil {
			return err
		}
	}
	return nil
}
