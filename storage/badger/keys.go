package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/omnisearch/core"
)

// Key prefixes for different data types
const (
	historyRecordPrefix = "qhrec"
	historyTimePrefix   = "qhts"
)

// makeHistoryKey generates a key for a history entry by ID.
func makeHistoryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", historyRecordPrefix, id))
}

// makeHistoryTimeKey generates a composite key for the time index.
// Format: prefix:timestamp:id
func makeHistoryTimeKey(searchedAt time.Time, id core.ID) []byte {
	prefixBytes := []byte(historyTimePrefix + ":")
	buf := make([]byte, len(prefixBytes)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(searchedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeHistoryTimeSeekKey returns a key that sorts after every time index key.
func makeHistoryTimeSeekKey() []byte {
	prefixBytes := []byte(historyTimePrefix + ":")
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xff
	}
	return buf
}
