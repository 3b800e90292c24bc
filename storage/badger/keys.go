package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/mangarec/core"
)

// Key prefixes for different data types
const (
	itemRecordPrefix   = "item"
	itemOrderPrefix    = "itemord"
	itemPositionPrefix = "itempos"
	itemOrderSeq       = "itemseq"
)

// makeItemKey generates a key for an item record by ID.
func makeItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", itemRecordPrefix, id))
}

// makeItemOrderKey generates a key for the corpus order index.
// Format: prefix:position
func makeItemOrderKey(position uint64) []byte {
	prefixBytes := []byte(itemOrderPrefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches insertion order
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// itemOrderIterPrefix is the prefix shared by every order index key.
func itemOrderIterPrefix() []byte {
	return []byte(itemOrderPrefix + ":")
}

// makeItemPositionKey generates the reverse lookup key from ID to position.
func makeItemPositionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", itemPositionPrefix, id))
}

func encodePosition(position uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, position)
	return buf
}

func decodePosition(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("invalid position value of %d bytes", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}
