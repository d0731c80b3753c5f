package sim

import "github.com/vovakirdan/starfield-dodge/internal/core"

// CollisionDetector tests the player's hitbox against every obstacle.
type CollisionDetector struct {
	// Offset is applied inward on each side of the player's sprite square.
	// Negative values shrink the hitbox; it tracks the sprite artwork.
	Offset float64
}

// PlayerBox returns the player's hitbox. The player is center-anchored.
func (d CollisionDetector) PlayerBox(p Player) core.Box {
	x1 := p.Pos.X - p.Size/2 - d.Offset
	y1 := p.Pos.Y - p.Size/2 - d.Offset
	return core.Box{
		X1: x1,
		Y1: y1,
		X2: x1 + p.Size + d.Offset*2,
		Y2: y1 + p.Size + d.Offset*2,
	}
}

// ObstacleBox returns an obstacle's hitbox. Obstacles are top-left-anchored.
func ObstacleBox(o Obstacle) core.Box {
	return core.BoxAt(o.Pos.X, o.Pos.Y, o.Size)
}

// Check returns the index of the first obstacle, in collection order, whose
// box overlaps the player's. Touching edges do not count.
func (d CollisionDetector) Check(p Player, obstacles []Obstacle) (int, bool) {
	pb := d.PlayerBox(p)
	for i, o := range obstacles {
		if pb.Overlaps(ObstacleBox(o)) {
			return i, true
		}
	}
	return -1, false
}
