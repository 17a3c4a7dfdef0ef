package boss

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"

	"github.com/michalkowalski94/metagraph/pkg/alphabet"
	"github.com/michalkowalski94/metagraph/pkg/succinct"
)

// magic identifies a BOSS dump. Header layout: magic "BOSS" (4 bytes),
// version (uint32 LE), k (uint32 LE), state tag.
var magic = [4]byte{'B', 'O', 'S', 'S'}

// formatVersion is the current on-disk format version. It is compared
// against the stream's version with Masterminds/semver so a future,
// backward-compatible minor bump can still be read by this reader; any
// stream whose major version differs from this one, older or newer, is
// rejected as ErrUnsupportedVersion.
const formatVersion = "1.0.0"

var currentVersion = mustParseVersion(formatVersion)

func mustParseVersion(s string) *semver.Version {
	v, err := semver.NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Serialize writes the graph to path as three logical sections (W, last, F)
// behind a single versioned header.
func (g *Graph) Serialize(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "boss: create")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := g.WriteTo(w); err != nil {
		return err
	}
	return w.Flush()
}

// WriteTo writes the serialised graph to an arbitrary io.Writer, letting
// callers compose a BOSS dump into a larger stream (three separate files
// or one concatenated stream, at the caller's choice).
func (g *Graph) WriteTo(w io.Writer) error {
	if g.state != StateStat {
		return errors.New("boss: Serialize requires STAT state")
	}
	if err := writeAll(w, magic[:]); err != nil {
		return err
	}
	if err := writeUint32(w, encodeVersion(currentVersion)); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(g.k)); err != nil {
		return err
	}
	if err := writeAll(w, []byte{uint8(g.state)}); err != nil {
		return err
	}

	n := g.wStat.Size()
	if err := writeUint64(w, n); err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		if err := writeAll(w, []byte{uint8(g.wStat.Access(i))}); err != nil {
			return err
		}
	}
	if err := writeBitVector(w, g.lastStat); err != nil {
		return err
	}
	for c := 0; c <= alphabet.Size; c++ {
		if err := writeUint64(w, g.f[c]); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a STAT graph previously written by Serialize.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "boss: open")
	}
	defer f.Close()
	return ReadFrom(bufio.NewReader(f))
}

// ReadFrom reads a serialised graph from an arbitrary io.Reader.
func ReadFrom(r io.Reader) (*Graph, error) {
	var hdr [4]byte
	if err := readAll(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "boss: read magic")
	}
	if hdr != magic {
		return nil, ErrInvalidMagic
	}
	rawVersion, err := readUint32(r)
	if err != nil {
		return nil, errors.Wrap(err, "boss: read version")
	}
	version := decodeVersion(rawVersion)
	if version.Major() != currentVersion.Major() {
		return nil, ErrUnsupportedVersion
	}

	kRaw, err := readUint32(r)
	if err != nil {
		return nil, errors.Wrap(err, "boss: read k")
	}
	var stateByte [1]byte
	if err := readAll(r, stateByte[:]); err != nil {
		return nil, errors.Wrap(err, "boss: read state")
	}

	n, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "boss: read N")
	}
	seq := make([]alphabet.Symbol, n)
	for i := range seq {
		var b [1]byte
		if err := readAll(r, b[:]); err != nil {
			return nil, errors.Wrap(err, "boss: read W")
		}
		seq[i] = alphabet.Symbol(b[0])
	}
	lastBits, err := readBitVector(r, n)
	if err != nil {
		return nil, errors.Wrap(err, "boss: read last")
	}

	f := make([]uint64, alphabet.Size+1)
	for c := 0; c <= alphabet.Size; c++ {
		v, err := readUint64(r)
		if err != nil {
			return nil, errors.Wrap(err, "boss: read F")
		}
		f[c] = v
	}

	g := &Graph{
		k:        int(kRaw),
		state:    StateStat,
		wStat:    succinct.NewWaveletTree(seq, 2*alphabet.Size-1),
		lastStat: lastBits,
		f:        f,
	}
	return g, nil
}

func writeBitVector(w io.Writer, bv *succinct.StaticBitVector) error {
	n := bv.Size()
	if err := writeUint64(w, n); err != nil {
		return err
	}
	for i := uint64(0); i < n; i += 64 {
		width := uint(64)
		if n-i < 64 {
			width = uint(n - i)
		}
		if err := writeUint64(w, bv.GetInt(i, width)); err != nil {
			return err
		}
	}
	return nil
}

func readBitVector(r io.Reader, expectN uint64) (*succinct.StaticBitVector, error) {
	n, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	if n != expectN {
		return nil, errors.New("boss: last length does not match W length")
	}
	numWords := (n + 63) / 64
	words := make([]uint64, numWords)
	for i := range words {
		v, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		words[i] = v
	}
	return succinct.NewStaticBitVectorFromWords(words, n), nil
}

func encodeVersion(v *semver.Version) uint32 {
	return uint32(v.Major())<<16 | uint32(v.Minor())<<8 | uint32(v.Patch())
}

func decodeVersion(raw uint32) *semver.Version {
	major := raw >> 16
	minor := (raw >> 8) & 0xFF
	patch := raw & 0xFF
	v, _ := semver.NewVersion(
		itoa(major) + "." + itoa(minor) + "." + itoa(patch),
	)
	return v
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func writeAll(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

func readAll(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	return err
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return writeAll(w, buf[:])
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readAll(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return writeAll(w, buf[:])
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readAll(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
