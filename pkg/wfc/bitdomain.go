// Package wfc implements the constraint-satisfaction core of a tile-based
// Wave Function Collapse solver: packed-bitset possibility sets, an
// arc-consistency propagator backed by a content-addressed support cache,
// and a deterministic backtracking search that reports its progress as a
// pull-driven event stream.
package wfc

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const wordBits = 64

// BitDomain is a packed bit-vector over tile indices [0, width). It is the
// possibility set carried by every grid cell: bit i set means tile index i
// is still possible in that cell.
//
// BitDomain is mutable through the single-bit operations (Set, Toggle,
// ClearAll) and the hot paths (UnionInto/IntersectInto) the Propagator and
// SupportCache rely on; every other operation either reads without
// mutating or returns a fresh domain. Callers that need an
// independent copy before mutating call Clone explicitly. Two domains are
// only comparable when Width() matches; mismatched widths are a programmer
// error (WidthMismatch), never tolerated silently.
type BitDomain struct {
	width int
	words []uint64
}

func wordsFor(width int) int {
	if width <= 0 {
		return 0
	}
	return (width + wordBits - 1) / wordBits
}

// NewBitDomain returns an empty domain over [0, width).
func NewBitDomain(width int) *BitDomain {
	return &BitDomain{width: width, words: make([]uint64, wordsFor(width))}
}

// FullBitDomain returns a domain with every index in [0, width) set.
func FullBitDomain(width int) *BitDomain {
	d := NewBitDomain(width)
	for i := range d.words {
		d.words[i] = ^uint64(0)
	}
	d.maskTail()
	return d
}

// maskTail clears any bits at positions >= width in the last word, keeping
// the "bits beyond width are always zero" invariant after a bulk fill.
func (d *BitDomain) maskTail() {
	if d.width == 0 || len(d.words) == 0 {
		return
	}
	rem := d.width % wordBits
	if rem == 0 {
		return
	}
	d.words[len(d.words)-1] &= (uint64(1) << uint(rem)) - 1
}

// Width returns the bit-width this domain was constructed with.
func (d *BitDomain) Width() int { return d.width }

func (d *BitDomain) requireSameWidth(other *BitDomain) {
	if d.width != other.width {
		panic(&WidthMismatch{Want: d.width, Got: other.width})
	}
}

func (d *BitDomain) requireInRange(i int) {
	if i < 0 || i >= d.width {
		panic(&IndexOutOfBounds{Index: i, Width: d.width})
	}
}

// Get reports whether index i is set.
func (d *BitDomain) Get(i int) bool {
	d.requireInRange(i)
	return d.words[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0
}

// Set assigns index i to the given value.
func (d *BitDomain) Set(i int, v bool) {
	d.requireInRange(i)
	mask := uint64(1) << uint(i%wordBits)
	if v {
		d.words[i/wordBits] |= mask
	} else {
		d.words[i/wordBits] &^= mask
	}
}

// ClearAll empties the domain in place.
func (d *BitDomain) ClearAll() {
	for i := range d.words {
		d.words[i] = 0
	}
}

// Toggle flips index i.
func (d *BitDomain) Toggle(i int) {
	d.requireInRange(i)
	d.words[i/wordBits] ^= uint64(1) << uint(i%wordBits)
}

// Count returns the cardinality (popcount across all words).
func (d *BitDomain) Count() int {
	n := 0
	for _, w := range d.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether no index is set.
func (d *BitDomain) IsEmpty() bool {
	for _, w := range d.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsFull reports whether every index in [0, width) is set.
func (d *BitDomain) IsFull() bool {
	full := len(d.words) * wordBits
	if d.width == full {
		for _, w := range d.words {
			if w != ^uint64(0) {
				return false
			}
		}
		return true
	}
	return d.Count() == d.width
}

// Equals reports whether two same-width domains contain the same indices.
func (d *BitDomain) Equals(other *BitDomain) bool {
	d.requireSameWidth(other)
	for i := range d.words {
		if d.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every index set in d is also set in other.
func (d *BitDomain) IsSubsetOf(other *BitDomain) bool {
	d.requireSameWidth(other)
	for i := range d.words {
		if d.words[i]&^other.words[i] != 0 {
			return false
		}
	}
	return true
}

// Union returns a new domain containing indices set in either domain.
func (d *BitDomain) Union(other *BitDomain) *BitDomain {
	out := d.Clone()
	out.UnionInto(other)
	return out
}

// Intersection returns a new domain containing indices set in both domains.
func (d *BitDomain) Intersection(other *BitDomain) *BitDomain {
	out := d.Clone()
	out.IntersectInto(other)
	return out
}

// Difference returns a new domain containing indices set in d but not other.
func (d *BitDomain) Difference(other *BitDomain) *BitDomain {
	d.requireSameWidth(other)
	out := NewBitDomain(d.width)
	for i := range d.words {
		out.words[i] = d.words[i] &^ other.words[i]
	}
	return out
}

// UnionInto mutates d to be the union of d and other. Required on the hot
// path where the SupportCache accumulates per-tile allow-sets.
func (d *BitDomain) UnionInto(other *BitDomain) {
	d.requireSameWidth(other)
	for i := range d.words {
		d.words[i] |= other.words[i]
	}
}

// IntersectInto mutates d to be the intersection of d and other. Required on
// the hot path where the Propagator narrows a cell's domain against support.
func (d *BitDomain) IntersectInto(other *BitDomain) {
	d.requireSameWidth(other)
	for i := range d.words {
		d.words[i] &= other.words[i]
	}
}

// Clone returns an independent deep copy.
func (d *BitDomain) Clone() *BitDomain {
	words := make([]uint64, len(d.words))
	copy(words, d.words)
	return &BitDomain{width: d.width, words: words}
}

// SingletonIndex returns the one set index in a cardinality-1 domain. It
// panics if the domain is not a singleton; callers only reach it once a
// cell's Count() == 1 has already been established.
func (d *BitDomain) SingletonIndex() int {
	if d.Count() != 1 {
		panic("wfc: SingletonIndex called on a non-singleton domain")
	}
	i, _ := d.FirstSet()
	return i
}

// FirstSet returns the smallest set index, or (0, false) if empty.
func (d *BitDomain) FirstSet() (int, bool) {
	for wi, w := range d.words {
		if w != 0 {
			return wi*wordBits + bits.TrailingZeros64(w), true
		}
	}
	return 0, false
}

// SetIterator is a one-shot snapshot iterator over the indices set in a
// BitDomain, taken at the moment IterSet is called. It cannot be rewound;
// each IterSet call returns a fresh iterator starting from the smallest
// index.
type SetIterator struct {
	values []int
	pos    int
}

// Next returns the next ascending set index and true, or (0, false) once
// exhausted.
func (it *SetIterator) Next() (int, bool) {
	if it.pos >= len(it.values) {
		return 0, false
	}
	v := it.values[it.pos]
	it.pos++
	return v, true
}

// IterSet returns a finite, ascending, one-shot iterator over the indices
// currently set in d. The snapshot is taken eagerly so later mutation of d
// does not affect an iterator already handed out.
func (d *BitDomain) IterSet() *SetIterator {
	return &SetIterator{values: d.ToSlice()}
}

// Each calls f for every set index in ascending order without allocating a
// snapshot; used on the hot paths (support computation, shuffle input) where
// iterator overhead would show up in profiles.
func (d *BitDomain) Each(f func(i int)) {
	for wi, w := range d.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			f(wi*wordBits + tz)
			w &= w - 1
		}
	}
}

// ToSlice materializes the set indices as an ascending slice.
func (d *BitDomain) ToSlice() []int {
	out := make([]int, 0, d.Count())
	d.Each(func(i int) { out = append(out, i) })
	return out
}

// Hash returns a word-wise content hash suitable as a map key. Equal domains
// (equal width, equal bits) always hash equal; it is the basis both for the
// Domain.hash() contract and for the SupportCache's LRU cache key.
func (d *BitDomain) Hash() uint64 {
	h := xxhash.New()
	h.Write(uint64SliceAsBytes(d.words))
	var widthBuf [8]byte
	putUint64(widthBuf[:], uint64(d.width))
	h.Write(widthBuf[:])
	return h.Sum64()
}

func uint64SliceAsBytes(ws []uint64) []byte {
	buf := make([]byte, 8*len(ws))
	for i, w := range ws {
		putUint64(buf[i*8:], w)
	}
	return buf
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}

// String renders the set indices, e.g. "{0,2,5}".
func (d *BitDomain) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	d.Each(func(i int) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(i))
	})
	sb.WriteByte('}')
	return sb.String()
}
