package viz

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects attractor space onto the canvas from a fixed distance,
// turning around the vertical axis.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, RotX: 0.3, Zoom: 1.0}
}

func (c *Camera) RotateY(a float64) { c.RotY += a }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project converts a point to canvas dots. ok is false behind the camera.
func (c *Camera) Project(p Vec3, sw, sh int) (x, y int, ok bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := float64(min(sw, sh)) / 3.0
	x = int(rot.X*scale*pScale) + sw/2
	y = int(-rot.Y*scale*pScale) + sh/2
	return x, y, true
}

// Render3D draws a polyline through trail.
func Render3D(c *Canvas, trail []Vec3, cam *Camera) {
	if c == nil || cam == nil || len(trail) == 0 {
		return
	}
	w, h := c.Dots()

	px, py, pok := cam.Project(trail[0], w, h)
	for _, p := range trail[1:] {
		x, y, ok := cam.Project(p, w, h)
		if ok && pok {
			c.DrawLine(px, py, x, y)
		}
		px, py, pok = x, y, ok
	}
}
