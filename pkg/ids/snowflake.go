package ids

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Generator mints short, time-ordered codes for things customers read aloud
// or type back in, such as gift card codes and table order numbers.
type Generator struct {
	node *snowflake.Node
}

// NewGenerator builds a generator for the given node (0-1023).
func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID & 0x3FF)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

// Next returns the raw snowflake id.
func (g *Generator) Next() int64 {
	return g.node.Generate().Int64()
}

// Code returns an upper-case base36 code, optionally prefixed ("GC-1A2B...").
func (g *Generator) Code(prefix string) string {
	code := strings.ToUpper(g.node.Generate().Base36())
	if prefix == "" {
		return code
	}
	return prefix + "-" + code
}
