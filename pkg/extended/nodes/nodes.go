// Package nodes derives nodes from stops. A node is a boarding point as a
// passenger names it: the parent station where one exists, the stop itself
// everywhere else.
package nodes

import (
	"github.com/tadashi-aikawa/hibou/pkg/gtfsjp"
	"github.com/tadashi-aikawa/hibou/pkg/util"
)

type Node struct {
	ID   int     `csv:"node_id" json:"node_id"`
	Name string  `csv:"node_name" json:"node_name"`
	Ruby *string `csv:"node_ruby" json:"node_ruby"`
}

// Generate numbers the top-level stops 1..n in input order, carrying each
// stop's name and reading over. Platforms below a parent station are
// dropped. No deduplication by name happens here; the input carries one
// row per stop.
func Generate(details []gtfsjp.StopDetail) []Node {
	util.InPlaceFilter(&details, func(detail gtfsjp.StopDetail) bool {
		return detail.IsTopLevel()
	})

	nodes := make([]Node, len(details))
	for i, detail := range details {
		nodes[i] = Node{
			ID:   i + 1,
			Name: detail.StopName,
			Ruby: detail.StopRuby,
		}
	}

	return nodes
}
