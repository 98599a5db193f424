package models

// cubeTuples is a unit cube from (0,0,0) to (1,1,1), two triangles per face,
// wound so the outward normal is cross(p1-p0, p2-p0).
var cubeTuples = [][]float64{
	// SOUTH
	{0, 0, 0, 0, 1, 0, 1, 1, 0, 0, 1, 0, 0, 1, 0},
	{0, 0, 0, 1, 1, 0, 1, 0, 0, 0, 1, 1, 0, 1, 1},
	// EAST
	{1, 0, 0, 1, 1, 0, 1, 1, 1, 0, 1, 0, 0, 1, 0},
	{1, 0, 0, 1, 1, 1, 1, 0, 1, 0, 1, 1, 0, 1, 1},
	// NORTH
	{1, 0, 1, 1, 1, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0},
	{1, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 1},
	// WEST
	{0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 0, 1, 0},
	{0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 1, 0, 1, 1},
	// TOP
	{0, 1, 0, 0, 1, 1, 1, 1, 1, 0, 1, 0, 0, 1, 0},
	{0, 1, 0, 1, 1, 1, 1, 1, 0, 0, 1, 1, 0, 1, 1},
	// BOTTOM
	{1, 0, 1, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 0},
	{1, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 0, 1, 1},
}

// Cube returns a textured unit cube.
func Cube() *Mesh {
	m, err := NewMeshFromTuples("cube", cubeTuples)
	if err != nil {
		panic(err) // static data
	}
	return m
}
