package annotate

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/michalkowalski94/metagraph/pkg/succinct"
)

// annoMagic identifies a BRWT dump: "<base>.anno.dbg —
// annotation: a pre-order BRWT dump."
var annoMagic = [4]byte{'B', 'R', 'W', 'T'}

// Serialize writes b to path as a pre-order traversal of its tree.
func (b *BRWT) Serialize(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "annotate: create")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := b.WriteTo(w); err != nil {
		return err
	}
	return w.Flush()
}

// WriteTo writes a pre-order BRWT dump to an arbitrary io.Writer.
func (b *BRWT) WriteTo(w io.Writer) error {
	if err := writeAll(w, annoMagic[:]); err != nil {
		return err
	}
	if err := writeUint64a(w, uint64(b.numRows)); err != nil {
		return err
	}
	if err := writeUint64a(w, uint64(b.numCols)); err != nil {
		return err
	}
	return writeNode(w, b.root)
}

func writeNode(w io.Writer, n *node) error {
	leafByte := byte(0)
	if n.isLeaf() {
		leafByte = 1
	}
	if err := writeAll(w, []byte{leafByte}); err != nil {
		return err
	}
	if err := writeUint32a(w, uint32(len(n.columns))); err != nil {
		return err
	}
	for _, c := range n.columns {
		if err := writeUint32a(w, uint32(c)); err != nil {
			return err
		}
	}
	if err := writeBitVectorA(w, n.nonzeroRows); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a BRWT previously written by Serialize.
func Load(path string) (*BRWT, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "annotate: open")
	}
	defer f.Close()
	return ReadFrom(bufio.NewReader(f))
}

// ReadFrom reads a pre-order BRWT dump from an arbitrary io.Reader.
func ReadFrom(r io.Reader) (*BRWT, error) {
	var hdr [4]byte
	if err := readAllA(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "annotate: read magic")
	}
	if hdr != annoMagic {
		return nil, errors.New("annotate: invalid magic")
	}
	numRows, err := readUint64a(r)
	if err != nil {
		return nil, err
	}
	numCols, err := readUint64a(r)
	if err != nil {
		return nil, err
	}
	root, err := readNode(r)
	if err != nil {
		return nil, err
	}
	return &BRWT{root: root, numRows: int(numRows), numCols: int(numCols)}, nil
}

func readNode(r io.Reader) (*node, error) {
	var leafByte [1]byte
	if err := readAllA(r, leafByte[:]); err != nil {
		return nil, err
	}
	numCols, err := readUint32a(r)
	if err != nil {
		return nil, err
	}
	columns := make([]int, numCols)
	for i := range columns {
		c, err := readUint32a(r)
		if err != nil {
			return nil, err
		}
		columns[i] = int(c)
	}
	bv, err := readBitVectorA(r)
	if err != nil {
		return nil, err
	}
	n := &node{nonzeroRows: bv, columns: columns}
	if leafByte[0] == 1 {
		return n, nil
	}
	left, err := readNode(r)
	if err != nil {
		return nil, err
	}
	right, err := readNode(r)
	if err != nil {
		return nil, err
	}
	n.children = []*node{left, right}
	return n, nil
}

func writeBitVectorA(w io.Writer, bv *succinct.StaticBitVector) error {
	n := bv.Size()
	if err := writeUint64a(w, n); err != nil {
		return err
	}
	for i := uint64(0); i < n; i += 64 {
		width := uint(64)
		if n-i < 64 {
			width = uint(n - i)
		}
		if err := writeUint64a(w, bv.GetInt(i, width)); err != nil {
			return err
		}
	}
	return nil
}

func readBitVectorA(r io.Reader) (*succinct.StaticBitVector, error) {
	n, err := readUint64a(r)
	if err != nil {
		return nil, err
	}
	numWords := (n + 63) / 64
	words := make([]uint64, numWords)
	for i := range words {
		v, err := readUint64a(r)
		if err != nil {
			return nil, err
		}
		words[i] = v
	}
	return succinct.NewStaticBitVectorFromWords(words, n), nil
}

func writeAll(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

func readAllA(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	return err
}

func writeUint32a(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return writeAll(w, buf[:])
}

func readUint32a(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readAllA(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeUint64a(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return writeAll(w, buf[:])
}

func readUint64a(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readAllA(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
