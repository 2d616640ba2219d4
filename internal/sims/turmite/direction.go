package turmite

// Direction is an ant heading. Clockwise turns cycle PosX, NegY, NegX, PosY.
type Direction uint8

const (
	PosX Direction = iota
	NegY
	NegX
	PosY
	numDirections
)

func (d Direction) String() string {
	switch d {
	case PosX:
		return "+x"
	case NegY:
		return "-y"
	case NegX:
		return "-x"
	case PosY:
		return "+y"
	}
	return "UNKNOWN"
}

// Clockwise returns the heading one quadrant further along the turn order.
func (d Direction) Clockwise() Direction { return (d + 1) % numDirections }

// CounterClockwise returns the heading one quadrant back along the turn order.
func (d Direction) CounterClockwise() Direction {
	return (d + numDirections - 1) % numDirections
}

// Opposite returns the heading rotated by 180 degrees.
func (d Direction) Opposite() Direction { return (d + 2) % numDirections }

// Delta returns the unit offset moved by one advance along d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case PosX:
		return 1, 0
	case NegY:
		return 0, -1
	case NegX:
		return -1, 0
	case PosY:
		return 0, 1
	}
	return 0, 0
}
