package world

import "testing"

func TestPartitionCoversRoot(t *testing.T) {
	root := Rect{X: 0, Y: 0, W: DefaultWidth, H: DefaultHeight}
	cfg := DefaultConfig()
	minLeaf := max(cfg.MinLeafSize, cfg.MinRoomSize+2)

	for seed := int64(1); seed <= 20; seed++ {
		leaves := Partition(root, cfg, NewDice(seed))
		if len(leaves) < 2 {
			t.Fatalf("seed %d: expected the root to split, got %d leaves", seed, len(leaves))
		}

		area := 0
		for i, leaf := range leaves {
			if leaf.Area() <= 0 {
				t.Errorf("seed %d: leaf %d has no area: %+v", seed, i, leaf)
			}
			if leaf.W < minLeaf || leaf.H < minLeaf {
				t.Errorf("seed %d: leaf %d smaller than %d: %+v", seed, i, minLeaf, leaf)
			}
			area += leaf.Area()
		}
		if area != root.Area() {
			t.Errorf("seed %d: leaves cover %d cells, root has %d", seed, area, root.Area())
		}
	}
}

func TestPartitionLeavesDoNotOverlap(t *testing.T) {
	leaves := Partition(Rect{W: 80, H: 40}, DefaultConfig(), NewDice(99))

	owner := make(map[Position]int)
	for i, leaf := range leaves {
		for y := leaf.Y; y < leaf.Y+leaf.H; y++ {
			for x := leaf.X; x < leaf.X+leaf.W; x++ {
				p := Position{X: x, Y: y}
				if j, ok := owner[p]; ok {
					t.Fatalf("Leaves %d and %d both cover %v", j, i, p)
				}
				owner[p] = i
			}
		}
	}
}

func TestPartitionInvertedLevelOrder(t *testing.T) {
	cfg := Config{SplitDepth: 1, MaxLeafSize: 1000}

	leaves := Partition(Rect{W: 40, H: 10}, cfg, NewDice(5))

	if len(leaves) != 2 {
		t.Fatalf("Expected 2 leaves, got %d", len(leaves))
	}
	// A wide root splits vertically; the later child is visited first.
	if leaves[0].X <= leaves[1].X {
		t.Errorf("Expected right child first, got %+v then %+v", leaves[0], leaves[1])
	}
}

func TestPartitionSmallRootIsLeaf(t *testing.T) {
	root := Rect{X: 2, Y: 3, W: 10, H: 9}

	leaves := Partition(root, DefaultConfig(), NewDice(1))

	if len(leaves) != 1 || leaves[0] != root {
		t.Errorf("Expected the unsplittable root back, got %+v", leaves)
	}
}

func TestPartitionSplitsOversizedLeaves(t *testing.T) {
	cfg := Config{SplitDepth: 0, MaxLeafSize: 20, MinLeafSize: 8, MinRoomSize: 4}

	leaves := Partition(Rect{W: 100, H: 60}, cfg, NewDice(3))

	for _, leaf := range leaves {
		canSplit := leaf.W >= 16 || leaf.H >= 16
		if (leaf.W > 20 || leaf.H > 20) && canSplit {
			t.Errorf("Leaf %+v exceeds the soft maximum but could still split", leaf)
		}
	}
}
