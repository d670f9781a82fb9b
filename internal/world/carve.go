package world

// CarveRoom picks a room inside leaf, carves it to floor and scatters water over
// it. The room keeps a one-tile margin from the leaf border. Leaves without an
// interior are skipped and report false.
func (g *Grid) CarveRoom(leaf Rect, cfg Config) (Room, bool) {
	cfg = cfg.withDefaults()

	innerW, innerH := leaf.W-2, leaf.H-2
	if innerW < 1 || innerH < 1 {
		return Room{}, false
	}

	w := g.dice.Roll(min(cfg.MinRoomSize, innerW), innerW)
	h := g.dice.Roll(min(cfg.MinRoomSize, innerH), innerH)
	x := g.dice.Roll(leaf.X+1, leaf.X+leaf.W-1-w)
	y := g.dice.Roll(leaf.Y+1, leaf.Y+leaf.H-1-h)

	room := Room{
		Begin: Position{X: x, Y: y},
		End:   Position{X: x + w - 1, Y: y + h - 1},
	}
	if !g.InBounds(room.Begin) || !g.InBounds(room.End) {
		return Room{}, false
	}

	room.Each(func(p Position) {
		g.SetTile(p, TileFloor)
	})
	g.scatterWater(room, cfg.WaterChance)

	g.rooms = append(g.rooms, room)
	return room, true
}

// scatterWater turns floor into water with the given percent chance per tile.
// A tile squeezed between two walls on opposite sides stays floor so a narrow
// room is never plugged. One roll is made per tile either way.
func (g *Grid) scatterWater(room Room, chance int) {
	if chance <= 0 {
		return
	}
	room.Each(func(p Position) {
		if g.dice.Percent() > chance {
			return
		}
		if g.pinched(p) {
			return
		}
		g.SetTile(p, TileWater)
	})
}

func (g *Grid) pinched(p Position) bool {
	wall := func(d Position) bool {
		return g.TypeAt(p.Add(d)) == TileWall
	}
	n, e, s, w := neighbours4[0], neighbours4[1], neighbours4[2], neighbours4[3]
	return (wall(w) && wall(e)) || (wall(n) && wall(s))
}
