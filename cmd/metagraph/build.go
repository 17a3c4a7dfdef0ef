package main

import (
	"flag"
	"os"

	"github.com/adrg/xdg"

	"github.com/michalkowalski94/metagraph/pkg/config"
	"github.com/michalkowalski94/metagraph/pkg/construct"
	"github.com/michalkowalski94/metagraph/pkg/ingest"
	"github.com/michalkowalski94/metagraph/pkg/logging"
	"github.com/michalkowalski94/metagraph/pkg/metrics"
)

// runBuild implements the `build` command: produce a BOSS graph from
// FASTA/FASTQ/VCF. Options control k, canonical mode, reverse-complement
// inclusion, split count s, worker count p, memory cap, and output base
// path; the build always runs the chunked constructor.
func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	k := fs.Int("k", 0, "node length (required)")
	canonical := fs.Bool("canonical", true, "build in canonical mode")
	rc := fs.Bool("rc", false, "also insert each sequence's reverse complement")
	splits := fs.Int("split", 1, "number of suffix splits (fast/chunked mode)")
	parallel := fs.Int("parallel", 1, "worker count")
	memCapGB := fs.Int("mem-cap-gb", 0, "per-suffix-pass memory cap in GiB (0 = unlimited)")
	out := fs.String("out", "graph", "output base path")
	cacheDir := fs.String("cache-dir", "", "cache directory for intermediate files")
	yamlPath := fs.String("config", "", "YAML options file")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *k <= 0 {
		return usageError{"build: -k is required and must be positive"}
	}
	if fs.NArg() == 0 {
		return usageError{"build: at least one input sequence file is required"}
	}

	cfg, err := config.Load(*yamlPath, ".env")
	if err != nil {
		return err
	}
	config.ApplyFlags(fs, &cfg, map[string]func(*config.Options){
		"k":          func(o *config.Options) { o.K = *k },
		"canonical":  func(o *config.Options) { o.Canonical = *canonical },
		"rc":         func(o *config.Options) { o.ReverseComplement = *rc },
		"split":      func(o *config.Options) { o.SplitCount = *splits },
		"parallel":   func(o *config.Options) { o.Parallel = *parallel },
		"mem-cap-gb": func(o *config.Options) { o.MemCapGB = *memCapGB },
		"out":        func(o *config.Options) { o.OutputBase = *out },
		"cache-dir":  func(o *config.Options) { o.CacheDir = *cacheDir },
	})
	resolvedCacheDir := cfg.CacheDirOrDefault(xdg.CacheHome)

	seqs, err := readSequenceFiles(fs.Args())
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, logrusLevelFor(os.Getenv("METAGRAPH_LOG_LEVEL")))
	logger.WithFields(logging.Fields{"cache_dir": resolvedCacheDir}).Debugf("resolved cache directory")
	opts := construct.Options{
		K:                 cfg.K,
		Canonical:         cfg.Canonical,
		ReverseComplement: cfg.ReverseComplement,
		NumSplits:         cfg.SplitCount,
		Parallel:          cfg.Parallel,
		MemCapBytes:       cfg.MemCapBytes(),
		PartsTotal:        1,
	}

	prog := newProgressWriter()
	prog.Printf("building graph k=%d parallel=%d\n", opts.K, opts.Parallel)
	g, err := construct.Build(ingest.NewSliceSource(seqs), opts, construct.NewJobManager(), logger)
	prog.Done()
	if err != nil {
		return err
	}

	metrics.GraphNodesTotal.WithLabelValues(cfg.OutputBase).Set(float64(g.NumNodes()))
	return g.Serialize(cfg.OutputBase + ".dbg")
}
