package happyball

import "github.com/vovakirdan/happyball/internal/core"

// CollisionDetector holds the fixed geometry needed to test the ball against
// the world. It has no state; every method is a pure function of its inputs.
type CollisionDetector struct {
	ObstacleWidth float64
	GapHeight     float64
	GroundY       float64
	CeilingY      float64
}

// Collides reports whether the ball touches the ground, the ceiling or any
// solid segment of the given obstacles.
func (d CollisionDetector) Collides(ball core.Box, obstacles []Obstacle) bool {
	if d.HitsGround(ball) || d.HitsCeiling(ball) {
		return true
	}
	for _, o := range obstacles {
		if d.HitsObstacle(ball, o) {
			return true
		}
	}
	return false
}

// HitsGround reports whether the ball's bottom edge is below the ground.
func (d CollisionDetector) HitsGround(ball core.Box) bool {
	return ball.Bottom() > d.GroundY
}

// HitsCeiling reports whether the ball's top edge is above the ceiling.
func (d CollisionDetector) HitsCeiling(ball core.Box) bool {
	return ball.Y < d.CeilingY
}

// HitsObstacle reports whether the ball overlaps the top or bottom segment of o.
func (d CollisionDetector) HitsObstacle(ball core.Box, o Obstacle) bool {
	// Cheap reject on the horizontal axis before building segment boxes.
	if ball.Right() <= o.X || ball.X >= o.Trailing(d.ObstacleWidth) {
		return false
	}
	return ball.Intersects(o.TopBox(d.ObstacleWidth)) ||
		ball.Intersects(o.BottomBox(d.ObstacleWidth, d.GapHeight, d.GroundY))
}
