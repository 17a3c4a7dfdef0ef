// Package config loads the CLI's build/merge/query/annotate options from
// (in precedence order) flags > environment > a YAML file > built-in
// defaults. A plain struct with yaml tags, a DefaultConfig constructor,
// and a strict YAML decoder.
package config

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Options holds every option the CLI surface exposes, regardless of
// which subcommand is driving the core.
type Options struct {
	// Shared graph parameters.
	K         int  `yaml:"k"`
	Canonical bool `yaml:"canonical"`

	// build
	ReverseComplement bool   `yaml:"reverse_complement"`
	FastMode          bool   `yaml:"fast_mode"`
	SplitCount        int    `yaml:"split_count"`
	Parallel          int    `yaml:"parallel"`
	MemCapGB          int    `yaml:"mem_cap_gb"`
	OutputBase        string `yaml:"output_base"`
	CacheDir          string `yaml:"cache_dir"`

	// merge
	MergeMode  string `yaml:"merge_mode"` // "traversal" | "blocked" | "collect-external"
	PartsTotal int    `yaml:"parts_total"`

	// query / classify
	BatchSizeBytes     int     `yaml:"batch_size_bytes"`
	DiscoveryFraction  float64 `yaml:"discovery_fraction"`
	QueryAlignLength   int     `yaml:"query_align_length"`

	// annotate
	AnnotationPath string `yaml:"annotation_path"`
}

// DefaultConfig returns sensible defaults for standalone use.
func DefaultConfig() Options {
	return Options{
		K:                 31,
		Canonical:         true,
		ReverseComplement: false,
		FastMode:          true,
		SplitCount:        1,
		Parallel:          1,
		MemCapGB:          0, // 0 == unlimited
		OutputBase:        "graph",
		MergeMode:         "traversal",
		PartsTotal:        1,
		BatchSizeBytes:    100 << 20, // 100MiB
		DiscoveryFraction: 0,
		QueryAlignLength:  0, // 0 == use K
	}
}

// envPrefix namespaces every environment variable this package recognises,
// e.g. METAGRAPH_K, METAGRAPH_PARALLEL.
const envPrefix = "METAGRAPH_"

// Load resolves Options from, in increasing precedence: built-in defaults,
// an optional YAML file at yamlPath (skipped if empty or missing), then
// environment variables (optionally seeded from a local .env file via
// godotenv). Callers layer flags on top of the result with ApplyFlags,
// which is the final and highest-precedence step.
func Load(yamlPath string, dotenvPath string) (Options, error) {
	cfg := DefaultConfig()

	if yamlPath != "" {
		if data, err := os.ReadFile(yamlPath); err == nil {
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(&cfg); err != nil {
				return cfg, fmt.Errorf("metagraph: YAML syntax error in %s: %w", yamlPath, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("metagraph: reading %s: %w", yamlPath, err)
		}
	}

	if dotenvPath != "" {
		// godotenv.Load is a no-op (returns an error we ignore) when the file
		// does not exist; it merges into the real shell environment rather
		// than replacing it.
		_ = godotenv.Load(dotenvPath)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// ApplyFlags overrides cfg with each flag in fs that the user actually
// set on the command line, per fs.Visit — flags left at their zero-value
// default are not applied, so a flag's default never clobbers a value
// already loaded from the environment or YAML. setters maps a flag name
// to the closure that copies that flag's parsed value into cfg; callers
// build one entry per flag they want Load's result to be overridable by.
func ApplyFlags(fs *flag.FlagSet, cfg *Options, setters map[string]func(*Options)) {
	fs.Visit(func(f *flag.Flag) {
		if setter, ok := setters[f.Name]; ok {
			setter(cfg)
		}
	})
}

func applyEnv(cfg *Options) {
	if v, ok := lookupEnvInt("K"); ok {
		cfg.K = v
	}
	if v, ok := lookupEnvBool("CANONICAL"); ok {
		cfg.Canonical = v
	}
	if v, ok := lookupEnvBool("REVERSE_COMPLEMENT"); ok {
		cfg.ReverseComplement = v
	}
	if v, ok := lookupEnvBool("FAST_MODE"); ok {
		cfg.FastMode = v
	}
	if v, ok := lookupEnvInt("SPLIT_COUNT"); ok {
		cfg.SplitCount = v
	}
	if v, ok := lookupEnvInt("PARALLEL"); ok {
		cfg.Parallel = v
	}
	if v, ok := lookupEnvInt("MEM_CAP_GB"); ok {
		cfg.MemCapGB = v
	}
	if v, ok := os.LookupEnv(envPrefix + "OUTPUT_BASE"); ok {
		cfg.OutputBase = v
	}
	if v, ok := os.LookupEnv(envPrefix + "CACHE_DIR"); ok {
		cfg.CacheDir = v
	}
	if v, ok := os.LookupEnv(envPrefix + "MERGE_MODE"); ok {
		cfg.MergeMode = v
	}
	if v, ok := lookupEnvInt("PARTS_TOTAL"); ok {
		cfg.PartsTotal = v
	}
	if v, ok := lookupEnvInt("BATCH_SIZE_BYTES"); ok {
		cfg.BatchSizeBytes = v
	}
	if v, ok := lookupEnvFloat("DISCOVERY_FRACTION"); ok {
		cfg.DiscoveryFraction = v
	}
}

func lookupEnvInt(name string) (int, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupEnvFloat(name string) (float64, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func lookupEnvBool(name string) (bool, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// MemCapBytes converts the configured gigabyte cap to bytes, or 0 if
// unlimited.
func (o Options) MemCapBytes() uint64 {
	if o.MemCapGB <= 0 {
		return 0
	}
	return uint64(o.MemCapGB) * (1 << 30)
}

// AlignLength resolves QueryAlignLength, defaulting to K when unset.
func (o Options) AlignLength() int {
	if o.QueryAlignLength <= 0 {
		return o.K
	}
	return o.QueryAlignLength
}

// CacheDirOrDefault returns CacheDir, or dflt if unset. cmd/metagraph passes
// an xdg.CacheHome-derived path as dflt.
func (o Options) CacheDirOrDefault(dflt string) string {
	if o.CacheDir != "" {
		return o.CacheDir
	}
	return dflt
}
