package teb

import "encoding/binary"

func readU32BE(b []byte) uint32     { return binary.BigEndian.Uint32(b) }
func writeU32BE(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }

// wordsToBytes renders words big-endian, so the header bytes come out in
// the order they are documented.
func wordsToBytes(dst []byte, words []uint64) {
	for i, w := range words {
		binary.BigEndian.PutUint64(dst[i*8:], w)
	}
}

func bytesToWords(dst []uint64, b []byte) {
	for i := range dst {
		dst[i] = binary.BigEndian.Uint64(b[i*8:])
	}
}
