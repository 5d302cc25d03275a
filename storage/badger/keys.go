package badger

import (
	"encoding/binary"

	"github.com/poiesic/slidesearch/core"
)

// Key prefixes for different data types
const (
	tableMetaPrefix = "tblmeta"
	tableRowPrefix  = "tblrow"
)

// makeTableMetaKey generates the key holding a table's metadata.
// Format: prefix:table
func makeTableMetaKey(table core.TableName) []byte {
	return []byte(tableMetaPrefix + ":" + string(table))
}

// makePartialTableRowKey generates the prefix shared by all rows of a table.
// Format: prefix:table:
func makePartialTableRowKey(table core.TableName) []byte {
	return []byte(tableRowPrefix + ":" + string(table) + ":")
}

// makeTableRowKey generates a composite key for one row.
// Format: prefix:table:index
func makeTableRowKey(table core.TableName, index int) []byte {
	prefixBytes := makePartialTableRowKey(table)
	buf := make([]byte, len(prefixBytes)+8) // 8 bytes for the row index
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort keeps row order
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// tableFromMetaKey extracts the table name from a metadata key.
func tableFromMetaKey(key []byte) core.TableName {
	return core.TableName(key[len(tableMetaPrefix)+1:])
}
