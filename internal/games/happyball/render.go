package happyball

import (
	"fmt"
	"math"

	"github.com/vovakirdan/happyball/internal/core"
)

// Visual characters for rendering
const (
	BallChar      = '●'
	ObstacleChar  = '█'
	CapTopChar    = '▄'
	CapBottomChar = '▀'
	GroundChar    = '═'
	SoilChar      = '▒'
	CloudChar     = '░'
)

// viewport maps world units onto screen cells.
type viewport struct {
	cols, rows    float64
	width, height float64
}

func newViewport(s Snapshot, dst *core.Screen) viewport {
	return viewport{
		cols:   float64(dst.Width()),
		rows:   float64(dst.Height()),
		width:  s.Width,
		height: s.Height,
	}
}

// Multiply before dividing so that exact world coordinates land on exact cells.
func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.cols / v.width))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.rows / v.height))
}

// RenderSnapshot draws a snapshot into the screen buffer, scaling the
// playfield to the buffer's size.
func RenderSnapshot(s Snapshot, dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 || s.Width <= 0 || s.Height <= 0 {
		return
	}
	v := newViewport(s, dst)

	groundRow := v.row(s.GroundY)
	for _, c := range s.Clouds {
		drawCloud(dst, v, c, groundRow)
	}
	drawGround(dst, groundRow)

	for _, o := range s.Obstacles {
		drawObstacle(dst, v, o, groundRow)
	}

	drawBall(dst, v, s.Ball)

	scoreText := fmt.Sprintf(" Score: %d ", s.Score)
	dst.DrawTextColored((dst.Width()-len(scoreText))/2, 0, scoreText, core.ColorBrightWhite)

	switch s.Phase {
	case PhaseIdle:
		dst.DrawTextCentered(dst.Height()/2, "Press SPACE to start")
	case PhaseGameOver:
		drawCenteredMessage(dst, "Game Over!", fmt.Sprintf("Score: %d", s.Score), "Press SPACE to restart")
	}
}

func drawGround(dst *core.Screen, groundRow int) {
	if groundRow >= dst.Height() {
		return
	}
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorYellow)
	for y := groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), SoilChar, core.ColorTan)
	}
}

// drawObstacle renders both segments of one obstacle column with caps
// facing the gap.
func drawObstacle(dst *core.Screen, v viewport, o ObstacleView, groundRow int) {
	left := v.col(o.X)
	right := core.Max(v.col(o.X+o.Width), left+1)
	width := right - left

	gapTopRow := v.row(o.GapTop)
	gapBottomRow := v.row(o.GapBottom)

	dst.DrawRect(core.NewRect(left, 0, width, gapTopRow), ObstacleChar, core.ColorGreen)
	if gapTopRow > 0 {
		dst.DrawHLine(left, gapTopRow-1, width, CapTopChar, core.ColorBrightGreen)
	}

	dst.DrawRect(core.NewRect(left, gapBottomRow, width, groundRow-gapBottomRow), ObstacleChar, core.ColorGreen)
	if gapBottomRow < groundRow {
		dst.DrawHLine(left, gapBottomRow, width, CapBottomChar, core.ColorBrightGreen)
	}
}

// drawCloud renders a cloud as light cells, kept above the ground line.
func drawCloud(dst *core.Screen, v viewport, c core.Box, groundRow int) {
	left := v.col(c.X)
	top := v.row(c.Y)
	bottom := core.Min(core.Max(v.row(c.Bottom()), top+1), groundRow)
	right := core.Max(v.col(c.Right()), left+1)
	dst.DrawRect(core.NewRect(left, top, right-left, bottom-top), CloudChar, core.ColorWhite)
}

// drawBall renders the ball as at least one cell.
func drawBall(dst *core.Screen, v viewport, ball core.Box) {
	left := v.col(ball.X)
	top := v.row(ball.Y)
	w := core.Max(v.col(ball.Right())-left, 1)
	h := core.Max(v.row(ball.Bottom())-top, 1)
	dst.DrawRect(core.NewRect(left, top, w, h), BallChar, core.ColorBrightRed)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, lines ...string) {
	longest := 0
	for _, l := range lines {
		longest = core.Max(longest, len(l))
	}

	boxW := longest + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	for i, l := range lines {
		dst.DrawTextColored(boxX+(boxW-len(l))/2, boxY+1+i, l, core.ColorBrightWhite)
	}
}
