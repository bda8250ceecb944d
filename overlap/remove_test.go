package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectanglePath(x0, y0, x1, y1 float64) Path {
	r := NewRecorder()
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	return r.Paths()[0]
}

func TestRemovePathOverlapSingleNonIntersectingInputIsUnchanged(t *testing.T) {
	input := rectanglePath(0, 0, 10, 10)
	result := RemovePathOverlap([]Path{input})

	require.Len(t, result, 1)
	assert.Len(t, result[0], len(input))
	assert.True(t, loopSegment{segments: result[0]}.isClosed())
}

func TestRemovePathOverlapTwoDisjointRectanglesStayDisjoint(t *testing.T) {
	a := rectanglePath(0, 0, 2, 2)
	b := rectanglePath(10, 10, 12, 12)
	result := RemovePathOverlap([]Path{a, b})

	require.Len(t, result, 2)
	for _, loop := range result {
		assert.True(t, loopSegment{segments: loop}.isClosed())
	}
}

func TestRemovePathOverlapOverlappingRectanglesMergeToOneLoop(t *testing.T) {
	a := rectanglePath(0, 0, 2, 3)
	b := rectanglePath(1, 1, 3, 2)
	result := RemovePathOverlap([]Path{a, b})

	require.Len(t, result, 1, "two overlapping rectangles merge into a single outer loop")
	assert.True(t, loopSegment{segments: result[0]}.isClosed())
	assert.Greater(t, len(result[0]), 4, "the merged loop has more segments than either input rectangle alone")
}

func TestHasVectorTailLoopRequiresRepeatOfAtLeastTwo(t *testing.T) {
	noLoop := []Segment{
		&Line{From: Point{0, 0}, To: Point{1, 0}},
		&Line{From: Point{1, 0}, To: Point{2, 0}},
		&Line{From: Point{2, 0}, To: Point{3, 0}},
	}
	_, found := hasVectorTailLoop(noLoop)
	assert.False(t, found)

	repeating := []Segment{
		&Line{From: Point{0, 0}, To: Point{1, 0}},
		&Line{From: Point{1, 0}, To: Point{2, 0}},
		&Line{From: Point{2, 0}, To: Point{3, 0}},
		&Line{From: Point{3, 0}, To: Point{4, 0}},
		&Line{From: Point{1, 0}, To: Point{2, 0}},
		&Line{From: Point{2, 0}, To: Point{3, 0}},
		&Line{From: Point{3, 0}, To: Point{4, 0}},
	}
	start, found := hasVectorTailLoop(repeating)
	require.True(t, found)
	assert.Equal(t, 4, start)
}

func TestSplitSegmentOnCrossPointSplitsIntersectingLines(t *testing.T) {
	a := &Line{From: Point{0, 0}, To: Point{2, 2}}
	b := &Line{From: Point{0, 2}, To: Point{2, 0}}

	aOut, bOut, ok := splitSegmentOnCrossPoint(a, b)
	require.True(t, ok)
	assert.Len(t, aOut, 2)
	assert.Len(t, bOut, 2)
}

func TestSplitSegmentOnCrossPointLeavesNonIntersectingLinesAlone(t *testing.T) {
	a := &Line{From: Point{0, 0}, To: Point{1, 0}}
	b := &Line{From: Point{0, 5}, To: Point{1, 5}}

	_, _, ok := splitSegmentOnCrossPoint(a, b)
	assert.False(t, ok)
}
