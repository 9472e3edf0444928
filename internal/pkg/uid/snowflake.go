package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates time-sortable int64 identifiers suitable for primary
// keys. Node IDs must be unique per running instance; collisions across
// instances with the same node ID can produce duplicate IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator for the given node ID (0..1023).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: node}, nil
}

// Generate returns a new int64 identifier.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
