package patch

// shiftTree tracks how much the in-progress text before a given original-text
// offset has grown or shrunk as edits are spliced in. It is an insert-only
// binary search tree keyed by original-text offsets ("pivots"); each node
// accumulates the summed delta of every point at or left of its key within
// its own subtree, so both insert and lookup are a single downward walk.
//
// The tree only reflects edits that have been physically applied to the
// working text, not all accepted candidates.
type shiftTree struct {
	root *shiftNode
}

type shiftNode struct {
	point int

	// acc is the sum of deltas recorded at points p <= point within this
	// node's subtree, including the node's own deltas.
	acc int

	left  *shiftNode
	right *shiftNode
}

// insert records that offsets at or after point must be adjusted by delta.
// Repeated inserts at the same point accumulate.
func (t *shiftTree) insert(point, delta int) {
	if t.root == nil {
		t.root = &shiftNode{point: point, acc: delta}
		return
	}

	node := t.root
	for {
		if point <= node.point {
			node.acc += delta
			if point == node.point {
				return
			}
			if node.left == nil {
				node.left = &shiftNode{point: point, acc: delta}
				return
			}
			node = node.left
		} else {
			if node.right == nil {
				node.right = &shiftNode{point: point, acc: delta}
				return
			}
			node = node.right
		}
	}
}

// lookup returns the total delta of all points <= point, i.e. how much the
// text before point has grown or shrunk due to edits applied so far.
func (t *shiftTree) lookup(point int) int {
	total := 0
	for node := t.root; node != nil; {
		if point >= node.point {
			total += node.acc
			node = node.right
		} else {
			node = node.left
		}
	}
	return total
}

// reset discards all recorded deltas.
func (t *shiftTree) reset() {
	t.root = nil
}
