package hierarchy

import "errors"

// ErrCircularReference is returned when a proposed parent link would make a
// node its own ancestor.
var ErrCircularReference = errors.New("circular reference detected")

// ParentFunc returns the parent of a node, or false if the node is a root.
type ParentFunc[T comparable] func(node T) (T, bool)

// ChildrenFunc returns the direct children of a node.
type ChildrenFunc[T comparable] func(node T) []T

// Ancestors returns the chain from node up to its root: node first, then its
// parent, and so on. The walk stops if it revisits a node, so corrupt cyclic
// data cannot make it loop forever.
func Ancestors[T comparable](node T, parentOf ParentFunc[T]) []T {
	chain := []T{node}
	seen := map[T]bool{node: true}

	current := node
	for {
		parent, ok := parentOf(current)
		if !ok || seen[parent] {
			return chain
		}
		chain = append(chain, parent)
		seen[parent] = true
		current = parent
	}
}

// Descendants returns every node reachable from root through children,
// excluding root itself. Breadth-first with a visited set: each node is
// expanded exactly once, so the cost is linear in the size of the subtree.
func Descendants[T comparable](root T, childrenOf ChildrenFunc[T]) []T {
	var result []T
	visited := map[T]bool{root: true}

	queue := []T{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, child := range childrenOf(current) {
			if visited[child] {
				continue
			}
			visited[child] = true
			result = append(result, child)
			queue = append(queue, child)
		}
	}
	return result
}

// ValidateNoCycle checks that linking node under proposedParent would not make
// node its own ancestor. It walks proposedParent's ancestor chain and fails
// with ErrCircularReference if node appears in it, including the degenerate
// case proposedParent == node.
func ValidateNoCycle[T comparable](node, proposedParent T, parentOf ParentFunc[T]) error {
	for _, ancestor := range Ancestors(proposedParent, parentOf) {
		if ancestor == node {
			return ErrCircularReference
		}
	}
	return nil
}
