package datamodel

import (
	"strings"
	"sync"
)

// Tree is the rooted data model: one sync.Mutex guarding every leaf's value
// and subscriber table, matching the "single subscription lock" discipline
// of the original design (components/DataModel).
type Tree struct {
	mu             sync.Mutex
	root           *Interior
	maxSubscribers int
}

// NewTree builds an empty tree. maxSubscribers bounds every leaf's
// subscriber table and should equal the MQTT session pool size.
func NewTree(maxSubscribers int) *Tree {
	return &Tree{
		root:           newInterior("", ""),
		maxSubscribers: maxSubscribers,
	}
}

// Subscribe walks the tree per the topic filter, attaching sub to every
// leaf it reaches. It returns the count of leaves newly attached in this
// call (re-attachments with a refreshed cookie don't count).
func (t *Tree) Subscribe(filter string, sub Subscriber, cookie uint32) (int, error) {
	if err := validateFilter(filter); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root.subscribeIfMatching(filter, sub, cookie), nil
}

// Unsubscribe mirrors Subscribe. Unsubscribing from a filter the subscriber
// never matched is silent, per MQTT UNSUBSCRIBE semantics for unknown topics.
func (t *Tree) Unsubscribe(filter string, sub Subscriber) error {
	if err := validateFilter(filter); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.root.unsubscribeIfMatching(filter, sub)
	return nil
}

// UnsubscribeAll detaches sub from every leaf in the tree, O(leaves). Used
// when a session is torn down.
func (t *Tree) UnsubscribeAll(sub Subscriber) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root.unsubscribeAll(sub)
}

// ensureInterior walks/creates the interior chain for a '/'-joined path
// (excluding the leaf's own name) and returns its terminal node.
func (t *Tree) ensureInterior(path string) *Interior {
	node := t.root
	if path == "" {
		return node
	}

	for _, part := range strings.Split(path, "/") {
		existing, ok := node.children[part]
		if !ok {
			child := newInterior(part, joinTopic(node.fullTopic, part))
			node.children[part] = child
			node = child
			continue
		}

		interior, ok := existing.(*Interior)
		if !ok {
			// A leaf already claims this name; the tree is built once at
			// startup by bridges that own disjoint paths, so this is a
			// construction-time programming error.
			panic("datamodel: " + part + " is already a leaf, not an interior node")
		}
		node = interior
	}

	return node
}

func joinTopic(parentTopic, name string) string {
	if parentTopic == "" {
		return name
	}
	return parentTopic + "/" + name
}

func splitPath(path string) (dir, name string) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// newLeafAt creates and attaches a leaf of type T at path, which must be
// unique among its siblings.
func newLeafAt[T comparable](t *Tree, path string, format func(T) string) *Leaf[T] {
	dir, name := splitPath(path)
	parent := t.ensureInterior(dir)

	if _, exists := parent.children[name]; exists {
		panic("datamodel: duplicate leaf path " + path)
	}

	leaf := newLeaf[T](t, name, joinTopic(parent.fullTopic, name), format)
	parent.children[name] = leaf
	return leaf
}
