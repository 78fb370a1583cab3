// Package engine holds the interpreter state shared by scripts and the
// animated-object engine: variables, flags, strings, controllers, the
// 256-slot object table and the per-frame motion, placement, cycling and
// compositing rules that drive it.
package engine

// Table sizes.
const (
	NumVars        = 256
	NumFlags       = 256
	NumStrings     = 24
	NumControllers = 50
	NumObjects     = 256
	MaxVar         = 255
)

// System variables.
const (
	VarCurRoom      = 0
	VarPrevRoom     = 1
	VarEgoEdge      = 2
	VarScore        = 3
	VarObjHit       = 4
	VarObjEdge      = 5
	VarEgoDir       = 6
	VarMaxScore     = 7
	VarMemLeft      = 8
	VarUnknownWord  = 9
	VarAnimationInt = 10
	VarSeconds      = 11
	VarMinutes      = 12
	VarHours        = 13
	VarDays         = 14
	VarLastChar     = 19
	VarMachineType  = 20
	VarPrintTimeout = 21
	VarNumVoices    = 22
	VarInputLen     = 24
	VarSelectedObj  = 25
	VarMonitorType  = 26
)

// System flags.
const (
	FlagOnWater     = 0
	FlagSeeEgo      = 1
	FlagInput       = 2
	FlagHitSpecial  = 3
	FlagHadMatch    = 4
	FlagInitLogics  = 5
	FlagRestart     = 6
	FlagNoScript    = 7
	FlagSoundOn     = 9
	FlagTrace       = 10
	FlagHasNoise    = 11
	FlagRestore     = 12
	FlagEnableMenu  = 14
	FlagLeaveWindow = 15
)

// Screen edges, as published in VarEgoEdge and VarObjEdge.
const (
	EdgeNone   = 0
	EdgeTop    = 1
	EdgeRight  = 2
	EdgeBottom = 3
	EdgeLeft   = 4
)

// Movement bounds of the picture area.
const (
	MinX           = 0
	MinY           = 0
	MaxX           = 159
	MaxY           = 167
	DefaultHorizon = 36

	DefaultPriorityBase = 48

	MinDist = 6
	MaxDist = 50
)

// MotionType selects how an object's direction is chosen each step.
type MotionType int

const (
	MotionNormal MotionType = iota
	MotionWander
	MotionFollow
	MotionMoveTo
)

// CycleType selects how an object's cel advances.
type CycleType int

const (
	CycleNormal CycleType = iota
	CycleEndLoop
	CycleReverseLoop
	CycleReverse
)

// loopSame means "keep the current loop" in the direction to loop tables.
const loopSame = 4

// Direction to loop for views with 2-3 and 4 loops.
var (
	twoLoop  = [9]int{loopSame, loopSame, 0, 0, 0, loopSame, 1, 1, 1}
	fourLoop = [9]int{loopSame, 3, 0, 0, 0, 2, 1, 1, 1}
)

// Compass unit displacement per direction. Direction 0 is stationary, 1 is
// up and the rest follow clockwise.
var (
	compassX = [9]int{0, 0, 1, 1, 1, 0, -1, -1, -1}
	compassY = [9]int{0, -1, -1, 0, 1, 1, 1, 0, -1}
)

// newDir maps (row, column) direction indices from DirectionIndex to a
// compass direction; row is the Y axis.
var newDir = [3][3]int{
	{8, 1, 2},
	{7, 0, 3},
	{6, 5, 4},
}

// Compass returns the unit displacement of direction d. Out-of-range
// directions are stationary.
func Compass(d int) (dx, dy int) {
	if d < 0 || d > 8 {
		return 0, 0
	}
	return compassX[d], compassY[d]
}

// DirectionIndex classifies a delta against a threshold: 0 when it
// decreases by at least delta, 2 when it increases by at least delta and 1
// otherwise.
func DirectionIndex(d, delta int) int {
	switch {
	case d <= -delta:
		return 0
	case d >= delta:
		return 2
	default:
		return 1
	}
}

// DirectionFromIndex composes a row (Y) and column (X) index into a compass
// direction.
func DirectionFromIndex(row, col int) int {
	return newDir[row][col]
}

// MoveDirection returns the compass direction from (oldX, oldY) toward
// (newX, newY), treating deltas smaller than delta as aligned.
func MoveDirection(oldX, oldY, newX, newY, delta int) int {
	return newDir[DirectionIndex(newY-oldY, delta)][DirectionIndex(newX-oldX, delta)]
}
