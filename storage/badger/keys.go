package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix = "chunk:"
	chunkFilePrefix   = "chunkf:"
	chunkRecordIDSeq  = "chunkseq"
)

// makeChunkRecordKey generates a key for a chunk record by sequence number.
// Format: prefix + 8 byte big endian seq, so keys sort in insertion order.
func makeChunkRecordKey(seq uint64) []byte {
	buf := make([]byte, len(chunkRecordPrefix)+8)
	offset := copy(buf, chunkRecordPrefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makePartialChunkFileKey generates the prefix shared by all index entries
// of one file. Format: prefix:filename\x00
func makePartialChunkFileKey(filename string) []byte {
	buf := make([]byte, 0, len(chunkFilePrefix)+len(filename)+1)
	buf = append(buf, chunkFilePrefix...)
	buf = append(buf, filename...)
	return append(buf, 0)
}

// makeChunkFileKey generates a filename index entry pointing at a record.
// Format: prefix:filename\x00seq
func makeChunkFileKey(filename string, seq uint64) []byte {
	prefix := makePartialChunkFileKey(filename)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// seqFromChunkFileKey extracts the record sequence from an index entry.
func seqFromChunkFileKey(key []byte) (uint64, bool) {
	if len(key) < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[len(key)-8:]), true
}
