/*
 * store.go, part of goQML.
 *
 * Copyright 2024 The goQML authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rep

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	qml "github.com/goqml/goqml"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

//Representation sets can be expensive to generate (ACSF on a large dataset,
//say), so they can be stored and reloaded. The format is a short text header
//followed by the raw float64 rows, little endian, all zstd compressed.

const (
	setMagic       = "goqml set 1"
	atomicSetMagic = "goqml atomicset 1"
)

// Write stores the set in w, zstd-compressed.
func (s *Set) Write(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return qml.NewError(qml.ErrConfiguration, "Set.Write", err.Error())
	}
	fmt.Fprintf(zw, "%s\n%d %d %d\n", setMagic, int(s.scheme), s.Len(), s.Dim())
	for i := 0; i < s.Len(); i++ {
		if err := binary.Write(zw, binary.LittleEndian, s.Row(i)); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

// WriteFile stores the set in the named file, creating or truncating it.
func (s *Set) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Write(f)
}

// ReadSet reads a Set previously stored with Write.
func ReadSet(r io.Reader) (*Set, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, qml.NewError(qml.ErrConfiguration, "ReadSet", err.Error())
	}
	defer zr.Close()
	br := bufio.NewReader(zr)
	scheme, n, d, _, err := readHeader(br, setMagic, "ReadSet", false)
	if err != nil {
		return nil, err
	}
	data := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		if err := binary.Read(br, binary.LittleEndian, data.RawRowView(i)); err != nil {
			return nil, qml.NewError(qml.ErrShapeMismatch, "ReadSet",
				fmt.Sprintf("truncated data at row %d: %v", i, err))
		}
	}
	return &Set{data: data, scheme: Scheme(scheme)}, nil
}

// ReadSetFile reads a Set from the named file.
func ReadSetFile(name string) (*Set, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSet(f)
}

// Write stores the atomic set in w, zstd-compressed.
func (s *AtomicSet) Write(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return qml.NewError(qml.ErrConfiguration, "AtomicSet.Write", err.Error())
	}
	fmt.Fprintf(zw, "%s\n%d %d %d\n", atomicSetMagic, int(s.scheme), s.Len(), s.Dim())
	for i, c := range s.counts {
		if i > 0 {
			fmt.Fprint(zw, " ")
		}
		fmt.Fprint(zw, c)
	}
	fmt.Fprint(zw, "\n")
	rows, _ := s.data.Dims()
	for i := 0; i < rows; i++ {
		if err := binary.Write(zw, binary.LittleEndian, s.data.RawRowView(i)); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

// WriteFile stores the atomic set in the named file, creating or truncating
// it.
func (s *AtomicSet) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Write(f)
}

// ReadAtomicSet reads an AtomicSet previously stored with Write.
func ReadAtomicSet(r io.Reader) (*AtomicSet, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, qml.NewError(qml.ErrConfiguration, "ReadAtomicSet", err.Error())
	}
	defer zr.Close()
	br := bufio.NewReader(zr)
	scheme, n, d, countLine, err := readHeader(br, atomicSetMagic, "ReadAtomicSet", true)
	if err != nil {
		return nil, err
	}
	counts := make([]int, n)
	offsets := make([]int, n)
	total := 0
	fields := countLine
	for i := 0; i < n; i++ {
		var c int
		read, err := fmt.Sscanf(fields, "%d", &c)
		if err != nil || read != 1 || c < 1 {
			return nil, qml.NewError(qml.ErrShapeMismatch, "ReadAtomicSet", "bad atom-count line")
		}
		counts[i] = c
		offsets[i] = total
		total += c
		fields = skipField(fields)
	}
	data := mat.NewDense(total, d, nil)
	for i := 0; i < total; i++ {
		if err := binary.Read(br, binary.LittleEndian, data.RawRowView(i)); err != nil {
			return nil, qml.NewError(qml.ErrShapeMismatch, "ReadAtomicSet",
				fmt.Sprintf("truncated data at row %d: %v", i, err))
		}
	}
	return &AtomicSet{data: data, counts: counts, offsets: offsets, scheme: Scheme(scheme)}, nil
}

// ReadAtomicSetFile reads an AtomicSet from the named file.
func ReadAtomicSetFile(name string) (*AtomicSet, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAtomicSet(f)
}

// readHeader consumes and validates the text header. If wantCounts, it also
// returns the atom-count line.
func readHeader(br *bufio.Reader, magic, caller string, wantCounts bool) (scheme, n, d int, counts string, err error) {
	line, err := br.ReadString('\n')
	if err != nil || line[:len(line)-1] != magic {
		return 0, 0, 0, "", qml.NewError(qml.ErrConfiguration, caller, "not a goQML set file")
	}
	line, err = br.ReadString('\n')
	if err != nil {
		return 0, 0, 0, "", qml.NewError(qml.ErrConfiguration, caller, "truncated header")
	}
	if _, err = fmt.Sscanf(line, "%d %d %d", &scheme, &n, &d); err != nil {
		return 0, 0, 0, "", qml.NewError(qml.ErrConfiguration, caller, "malformed header: "+err.Error())
	}
	if n < 1 || d < 1 {
		return 0, 0, 0, "", qml.NewError(qml.ErrEmptyInput, caller, "stored set is empty")
	}
	if wantCounts {
		counts, err = br.ReadString('\n')
		if err != nil {
			return 0, 0, 0, "", qml.NewError(qml.ErrConfiguration, caller, "truncated header")
		}
	}
	return scheme, n, d, counts, nil
}

// skipField drops the leading whitespace-separated field of s.
func skipField(s string) string {
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\n' {
		i++
	}
	for i < len(s) && (s[i] == ' ' || s[i] == '\n') {
		i++
	}
	return s[i:]
}
