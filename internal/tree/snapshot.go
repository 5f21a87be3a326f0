package tree

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"framelint/internal/node"
)

// Digest identifies a snapshot's exact content.
type Digest [sha256.Size]byte

// Snapshot is a whole-document export: the CLI's stand-in for a live design
// tool. It implements Provider and Mutator over the embedded tree.
type Snapshot struct {
	Name  string       `json:"name,omitempty"`
	Roots []*node.Node `json:"roots"`

	index map[string]*node.Node
}

// Load reads and indexes a snapshot JSON file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: failed to parse snapshot: %w", path, err)
	}
	s.reindex()
	return &s, nil
}

// FromRoots wraps an in-memory tree as a snapshot.
func FromRoots(roots ...*node.Node) *Snapshot {
	s := &Snapshot{Roots: roots}
	s.reindex()
	return s
}

// Save writes the snapshot back to disk, e.g. after fixes were applied.
func (s *Snapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Digest hashes the snapshot's canonical JSON form.
func (s *Snapshot) Digest() (Digest, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(data), nil
}

// Node resolves a node by id, or nil.
func (s *Snapshot) Node(id string) *node.Node {
	return s.index[id]
}

// Children implements Provider over the embedded tree.
func (s *Snapshot) Children(ctx context.Context, nodeID string) ([]*node.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := s.index[nodeID]
	if n == nil {
		return nil, fmt.Errorf("unknown node %q", nodeID)
	}
	return n.Children, nil
}

func (s *Snapshot) reindex() {
	s.index = make(map[string]*node.Node)
	var walk func(n *node.Node)
	walk = func(n *node.Node) {
		if n == nil {
			return
		}
		// First registration wins so lookups stay deterministic even on
		// malformed input with duplicate ids.
		if _, dup := s.index[n.ID]; !dup {
			s.index[n.ID] = n
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range s.Roots {
		walk(r)
	}
}
