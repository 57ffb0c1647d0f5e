package willow3d

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// triCommand is a single screen-space triangle emitted during traversal.
type triCommand struct {
	X, Y  [3]float32
	Color color32
	// Depth is the mean view-space distance of the three vertices; larger is
	// farther from the camera.
	Depth     float64
	treeOrder int
}

// color32 is a compact premultiplied RGBA color using float32, for render
// commands only.
type color32 struct {
	R, G, B, A float32
}

func premul32(c Color) color32 {
	a := float32(c.A)
	return color32{float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a}
}

// maxBatchVertices keeps a flushed batch addressable with uint16 indices.
const maxBatchVertices = math.MaxUint16 - 2

var whiteSub *ebiten.Image

// whitePixel returns a 1x1 white source image for untextured triangles. The
// center pixel of a 3x3 image avoids filtering in edge texels.
func whitePixel() *ebiten.Image {
	if whiteSub == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSub = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSub
}

// traverse walks the node tree depth-first and emits one command per
// front-facing triangle of every visible, renderable mesh. Invisible nodes
// hide their subtree.
func (s *Scene) traverse(n *Node, treeOrder *int) {
	if !n.Visible {
		return
	}
	if n.Renderable && n.Type == NodeTypeMesh && n.Geometry != nil {
		s.emitMesh(n, treeOrder)
	}
	for _, child := range n.children {
		s.traverse(child, treeOrder)
	}
}

// emitMesh back-face culls, shades and projects the triangles of n.
// Triangles with any vertex outside the camera's depth range are dropped.
func (s *Scene) emitMesh(n *Node, treeOrder *int) {
	cam := s.camera
	verts := n.refreshWorldVerts()
	view := cam.ViewMatrix()
	inds := n.Geometry.Indices

	var lights []*Light
	if !n.Unlit {
		lights = s.lights
	}

	for i := 0; i+2 < len(inds); i += 3 {
		a, b, c := verts[inds[i]], verts[inds[i+1]], verts[inds[i+2]]
		normal, ok := unitFaceNormal(a, b, c)
		if !ok || normal.Dot(cam.Eye.Sub(a)) <= 0 {
			continue
		}

		var cmd triCommand
		var depthSum float64
		visible := true
		for k, p := range [3]Vec3{a, b, c} {
			v := view.Point(p)
			d := -v[2]
			if d < cam.Near || d > cam.Far {
				visible = false
				break
			}
			sx, sy := cam.toScreen(v)
			cmd.X[k], cmd.Y[k] = float32(sx), float32(sy)
			depthSum += d
		}
		if !visible {
			continue
		}

		*treeOrder++
		cmd.Depth = depthSum / 3
		cmd.Color = premul32(shade(n.Color, normal, lights))
		cmd.treeOrder = *treeOrder
		s.commands = append(s.commands, cmd)
	}
}

// sortCommands orders commands back to front (painter's algorithm). Equal
// depths keep traversal order.
func (s *Scene) sortCommands() {
	slices.SortStableFunc(s.commands, func(a, b triCommand) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		}
		return a.treeOrder - b.treeOrder
	})
}

// submit batches sorted commands into DrawTriangles calls.
func (s *Scene) submit(target *ebiten.Image) int {
	src := whitePixel()
	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
	calls := 0
	for i := range s.commands {
		if len(s.batchVerts)+3 > maxBatchVertices {
			s.flush(target, src)
			calls++
		}
		cmd := &s.commands[i]
		base := uint16(len(s.batchVerts))
		for k := 0; k < 3; k++ {
			s.batchVerts = append(s.batchVerts, ebiten.Vertex{
				DstX:   cmd.X[k],
				DstY:   cmd.Y[k],
				SrcX:   1,
				SrcY:   1,
				ColorR: cmd.Color.R,
				ColorG: cmd.Color.G,
				ColorB: cmd.Color.B,
				ColorA: cmd.Color.A,
			})
		}
		s.batchInds = append(s.batchInds, base, base+1, base+2)
	}
	if len(s.batchVerts) > 0 {
		s.flush(target, src)
		calls++
	}
	return calls
}

func (s *Scene) flush(target, src *ebiten.Image) {
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = s.AntiAlias
	target.DrawTriangles(s.batchVerts, s.batchInds, src, &op)
	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
}
