package model

// EpiIndex enumerates the flat 2^K epigenomic state space and
// packs/unpacks a K-bit mark vector to and from its dense index in
// O(K).
//
// The enumeration itself follows the combinatorial "iterate every
// assignment of a fixed-width vector" idiom used by k-mer enumeration
// (iterate index 0..4^k-1, unpack base-4 digits); here the alphabet per
// slot is binary instead of {A,C,G,T}, so the base is 2 instead of 4.
type EpiIndex struct {
	K     int
	Count int // 2^K
}

// NewEpiIndex builds the index for K tracks.
func NewEpiIndex(k int) EpiIndex {
	return EpiIndex{K: k, Count: 1 << uint(k)}
}

// Pack maps a K-length slice of '0'/'1' (or 0/1) bytes to its dense
// index. Bit i of the index corresponds to marks[i] (track i+1).
func (e EpiIndex) Pack(marks []byte) int {
	idx := 0
	for i, m := range marks {
		bit := 0
		if m == '1' || m == 1 {
			bit = 1
		}
		idx |= bit << uint(i)
	}
	return idx
}

// Bit returns the i-th track's bit (0 or 1) of state index idx.
func (e EpiIndex) Bit(idx, i int) int {
	return (idx >> uint(i)) & 1
}

// Unpack expands a dense index back into a K-length 0/1 byte slice.
func (e EpiIndex) Unpack(idx int) []byte {
	out := make([]byte, e.K)
	for i := range out {
		out[i] = byte('0' + e.Bit(idx, i))
	}
	return out
}
