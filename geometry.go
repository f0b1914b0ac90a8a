package anakin

import (
	"math"

	"github.com/golang/geo/r3"
)

// Mesh is an opaque triangulated surface attached to a rigid body for
// rendering. Dynamics never reads it. Vertices are in the body frame,
// centered on the center of mass.
type Mesh struct {
	Vertices  []r3.Vector
	Triangles [][3]int
}

// NewBoxMesh returns the surface of an axis-aligned box with edge lengths
// lx, ly, lz centered on the origin.
func NewBoxMesh(lx, ly, lz float64) *Mesh {
	x, y, z := lx/2, ly/2, lz/2
	verts := []r3.Vector{
		{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z},
		{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z},
	}
	tris := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4},
		{1, 2, 6}, {1, 6, 5},
		{2, 3, 7}, {2, 7, 6},
		{3, 0, 4}, {3, 4, 7},
	}
	return &Mesh{Vertices: verts, Triangles: tris}
}

// NewSphereMesh returns a UV sphere of the given radius with n meridians and
// n/2 parallels.
func NewSphereMesh(r float64, n int) *Mesh {
	if n < 3 {
		n = 3
	}
	rows := n / 2
	if rows < 2 {
		rows = 2
	}
	mesh := &Mesh{}
	// Poles plus interior rings.
	mesh.Vertices = append(mesh.Vertices, r3.Vector{Z: r})
	for i := 1; i < rows; i++ {
		φ := math.Pi * float64(i) / float64(rows)
		sφ, cφ := math.Sincos(φ)
		for j := 0; j < n; j++ {
			θ := 2 * math.Pi * float64(j) / float64(n)
			sθ, cθ := math.Sincos(θ)
			mesh.Vertices = append(mesh.Vertices, r3.Vector{X: r * sφ * cθ, Y: r * sφ * sθ, Z: r * cφ})
		}
	}
	south := len(mesh.Vertices)
	mesh.Vertices = append(mesh.Vertices, r3.Vector{Z: -r})
	ring := func(i, j int) int { return 1 + (i-1)*n + (j % n) }
	for j := 0; j < n; j++ {
		mesh.Triangles = append(mesh.Triangles, [3]int{0, ring(1, j), ring(1, j+1)})
		mesh.Triangles = append(mesh.Triangles, [3]int{south, ring(rows-1, j+1), ring(rows-1, j)})
	}
	for i := 1; i < rows-1; i++ {
		for j := 0; j < n; j++ {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j), ring(i+1, j+1)
			mesh.Triangles = append(mesh.Triangles, [3]int{a, c, d}, [3]int{a, d, b})
		}
	}
	return mesh
}

// NewCylinderMesh returns a cylinder of the given radius and height with its
// axis along z, n facets around.
func NewCylinderMesh(r, h float64, n int) *Mesh {
	if n < 3 {
		n = 3
	}
	mesh := &Mesh{}
	top, bottom := h/2, -h/2
	for j := 0; j < n; j++ {
		θ := 2 * math.Pi * float64(j) / float64(n)
		s, c := math.Sincos(θ)
		mesh.Vertices = append(mesh.Vertices, r3.Vector{X: r * c, Y: r * s, Z: bottom})
		mesh.Vertices = append(mesh.Vertices, r3.Vector{X: r * c, Y: r * s, Z: top})
	}
	cb := len(mesh.Vertices)
	mesh.Vertices = append(mesh.Vertices, r3.Vector{Z: bottom})
	ct := len(mesh.Vertices)
	mesh.Vertices = append(mesh.Vertices, r3.Vector{Z: top})
	for j := 0; j < n; j++ {
		b0, t0 := 2*j, 2*j+1
		b1, t1 := 2*((j+1)%n), 2*((j+1)%n)+1
		mesh.Triangles = append(mesh.Triangles,
			[3]int{b0, b1, t1}, [3]int{b0, t1, t0}, // side
			[3]int{cb, b1, b0},                     // bottom cap
			[3]int{ct, t0, t1})                     // top cap
	}
	return mesh
}

// Volume returns the signed volume enclosed by the mesh via the divergence
// theorem. Outward-wound closed surfaces give positive volume.
func (m *Mesh) Volume() float64 {
	var v float64
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		v += a.Dot(b.Cross(c)) / 6
	}
	return v
}
