package badger

import (
	"encoding/binary"

	"github.com/poiesic/facultyfinder/core"
)

// Key prefixes for different data types
const (
	facultyRecordPrefix = "facrec:"
)

// makeFacultyRecordKey generates a key for a faculty record by ID.
// Format: prefix + big-endian ID, so prefix iteration yields ascending IDs.
func makeFacultyRecordKey(id core.ID) []byte {
	buf := make([]byte, len(facultyRecordPrefix)+8)
	offset := copy(buf, facultyRecordPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// idFromFacultyRecordKey extracts the ID from a faculty record key.
func idFromFacultyRecordKey(key []byte) (core.ID, bool) {
	if len(key) != len(facultyRecordPrefix)+8 || string(key[:len(facultyRecordPrefix)]) != facultyRecordPrefix {
		return 0, false
	}
	return core.ID(binary.BigEndian.Uint64(key[len(facultyRecordPrefix):])), true
}
