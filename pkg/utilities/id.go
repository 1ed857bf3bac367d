package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewID generates a new globally unique KSUID string. KSUIDs are
// k-sortable by creation time, which keeps index locality for rows
// that are mostly read back in creation order.
func NewID() string {
	return ksuid.New().String()
}

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewRequestID generates a short snowflake ID for tagging a single
// HTTP request in logs. The node ID comes from SNOWFLAKE_NODE; if the
// node cannot be initialized it falls back to a KSUID so a unique ID
// is always returned.
func NewRequestID() string {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = parsed
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			return
		}
		node = n
	})
	if node == nil {
		return NewID()
	}
	return node.Generate().String()
}
