package anakin

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestBoxMeshVolume(t *testing.T) {
	m := NewBoxMesh(1, 2, 3)
	if len(m.Vertices) != 8 || len(m.Triangles) != 12 {
		t.Fatalf("box mesh has %d vertices, %d triangles", len(m.Vertices), len(m.Triangles))
	}
	if v := m.Volume(); !floats.EqualWithinAbs(v, 6, 1e-12) {
		t.Fatalf("box volume: %v", v)
	}
}

func TestSphereMeshVolume(t *testing.T) {
	// The inscribed polyhedron converges to the ball volume from below.
	m := NewSphereMesh(2, 96)
	want := 4.0 / 3.0 * math.Pi * 8
	if v := m.Volume(); v > want || !floats.EqualWithinAbsOrRel(v, want, 0, 5e-3) {
		t.Fatalf("sphere volume: %v, want ~%v", v, want)
	}
}

func TestCylinderMeshVolume(t *testing.T) {
	m := NewCylinderMesh(1, 3, 96)
	want := math.Pi * 3
	if v := m.Volume(); v > want || !floats.EqualWithinAbsOrRel(v, want, 0, 5e-3) {
		t.Fatalf("cylinder volume: %v, want ~%v", v, want)
	}
}

func TestMeshClosedSurfaces(t *testing.T) {
	// Every edge of a closed oriented surface is shared by exactly two
	// triangles, once in each direction.
	for name, m := range map[string]*Mesh{
		"box":      NewBoxMesh(1, 1, 1),
		"sphere":   NewSphereMesh(1, 12),
		"cylinder": NewCylinderMesh(1, 1, 12),
	} {
		edges := map[[2]int]int{}
		for _, tri := range m.Triangles {
			for i := 0; i < 3; i++ {
				edges[[2]int{tri[i], tri[(i+1)%3]}]++
			}
		}
		for e, n := range edges {
			if n != 1 {
				t.Fatalf("%s: edge %v used %d times", name, e, n)
			}
			if edges[[2]int{e[1], e[0]}] != 1 {
				t.Fatalf("%s: edge %v has no opposite", name, e)
			}
		}
	}
}
