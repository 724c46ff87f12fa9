package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/ballistics/internal/dynamo"
)

// Point is one sample projected onto the range-height plane.
type Point struct {
	Range, Height float64
}

// Path projects traj onto horizontal distance from launch versus height.
func Path(traj *dynamo.Trajectory, verticalAxis int) []Point {
	points := make([]Point, traj.Len())
	for i := range points {
		points[i] = Point{
			Range:  horizontal(traj, i, verticalAxis),
			Height: traj.Position(i, verticalAxis),
		}
	}
	return points
}

// PathToASCII draws points on a width×height canvas. A finite
// targetHeight is drawn as a dashed line; the ground (height 0) as a
// solid line when it is in view.
func PathToASCII(points []Point, width, height int, targetHeight float64) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].Range, points[0].Range
	minY, maxY := points[0].Height, points[0].Height

	for _, p := range points {
		minX = math.Min(minX, p.Range)
		maxX = math.Max(maxX, p.Range)
		minY = math.Min(minY, p.Height)
		maxY = math.Max(maxY, p.Height)
	}
	if !math.IsNaN(targetHeight) && !math.IsInf(targetHeight, 0) {
		minY = math.Min(minY, targetHeight)
		maxY = math.Max(maxY, targetHeight)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	row := func(y float64) int {
		return height - 1 - int((y-minY)/rangeY*float64(height-1))
	}

	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for col := 0; col < width; col++ {
			canvas[r][col] = '─'
		}
	}
	if !math.IsNaN(targetHeight) && !math.IsInf(targetHeight, 0) {
		r := row(targetHeight)
		for col := 0; col < width; col += 2 {
			canvas[r][col] = '┄'
		}
	}

	for _, p := range points {
		col := int((p.Range - minX) / rangeX * float64(width-1))
		r := row(p.Height)
		if r >= 0 && r < height && col >= 0 && col < width {
			canvas[r][col] = '•'
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
