package world

// Rect is an axis-aligned region of the grid. X and Y are the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	return r.W * r.H
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	rect        Rect
	depth       int
	left, right *bspNode
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// Partition recursively splits root into leaves and returns them in inverted
// level order: deepest level first, so children always come before the node
// that produced them. Every leaf has a positive area.
func Partition(root Rect, cfg Config, dice *Dice) []Rect {
	cfg = cfg.withDefaults()
	if root.Area() <= 0 {
		return nil
	}

	minLeaf := max(cfg.MinLeafSize, cfg.MinRoomSize+2)

	// Breadth-first: every node is appended after its parent.
	order := []*bspNode{{rect: root}}
	for i := 0; i < len(order); i++ {
		node := order[i]
		if !node.split(cfg, minLeaf, dice) {
			continue
		}
		order = append(order, node.left, node.right)
	}

	leaves := make([]Rect, 0, len(order)/2+1)
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].isLeaf() {
			leaves = append(leaves, order[i].rect)
		}
	}
	return leaves
}

// split divides the node in two if depth remains or the node is larger than the
// soft maximum. Returns false when the node stays a leaf.
func (n *bspNode) split(cfg Config, minLeaf int, dice *Dice) bool {
	r := n.rect
	oversized := r.W > cfg.MaxLeafSize || r.H > cfg.MaxLeafSize
	if n.depth >= cfg.SplitDepth && !oversized {
		return false
	}

	canVertical := r.W >= minLeaf*2
	canHorizontal := r.H >= minLeaf*2
	if !canVertical && !canHorizontal {
		return false
	}

	// Determine split direction
	var vertical bool
	switch {
	case float64(r.W) > float64(r.H)*cfg.SplitRatio:
		vertical = true
	case float64(r.H) > float64(r.W)*cfg.SplitRatio:
		vertical = false
	default:
		vertical = dice.Coin()
	}
	if vertical && !canVertical {
		vertical = false
	} else if !vertical && !canHorizontal {
		vertical = true
	}

	if vertical {
		cut := dice.Roll(minLeaf, r.W-minLeaf)
		n.left = &bspNode{rect: Rect{X: r.X, Y: r.Y, W: cut, H: r.H}, depth: n.depth + 1}
		n.right = &bspNode{rect: Rect{X: r.X + cut, Y: r.Y, W: r.W - cut, H: r.H}, depth: n.depth + 1}
	} else {
		cut := dice.Roll(minLeaf, r.H-minLeaf)
		n.left = &bspNode{rect: Rect{X: r.X, Y: r.Y, W: r.W, H: cut}, depth: n.depth + 1}
		n.right = &bspNode{rect: Rect{X: r.X, Y: r.Y + cut, W: r.W, H: r.H - cut}, depth: n.depth + 1}
	}
	return true
}
