package happyball

import "github.com/vovakirdan/happyball/internal/core"

// Ball is the player-controlled body. It only moves vertically; X and Size
// are fixed for the lifetime of a round.
type Ball struct {
	X         float64 // Fixed horizontal position (left edge)
	Y         float64 // Vertical position (top edge)
	VelocityY float64 // Positive is downward
	Size      float64 // Side of the bounding square
}

// NewBall creates a ball at rest.
func NewBall(x, y, size float64) *Ball {
	return &Ball{X: x, Y: y, Size: size}
}

// Integrate advances the ball by the given number of fixed ticks.
// Each tick adds gravity to the velocity and then the velocity to the position.
func (b *Ball) Integrate(gravity float64, ticks int) {
	for i := 0; i < ticks; i++ {
		b.VelocityY += gravity
		b.Y += b.VelocityY
	}
}

// ApplyImpulse overwrites the vertical velocity.
func (b *Ball) ApplyImpulse(v float64) {
	b.VelocityY = v
}

// Box returns the ball's collision box.
func (b *Ball) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.Size, b.Size)
}
