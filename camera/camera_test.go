package camera

import (
	"math"
	"testing"
)

func newTestCamera() *Perspective {
	return New(60, 0.1, 2000, [3]float32{0, 0, 1}, [3]float32{0, 0, 0}, 1280, 720)
}

func TestNew(t *testing.T) {
	cam := newTestCamera()

	if math.Abs(float64(cam.Aspect)-1280.0/720.0) > 1e-5 {
		t.Errorf("expected aspect %f, got %f", 1280.0/720.0, cam.Aspect)
	}
	// f = 1/tan(30°) = √3
	if math.Abs(float64(cam.Projection[5])-math.Sqrt(3)) > 1e-5 {
		t.Errorf("expected projection[5] = √3, got %f", cam.Projection[5])
	}
	if cam.Projection[11] != -1 {
		t.Errorf("expected projection[11] = -1, got %f", cam.Projection[11])
	}
}

func TestResizeUpdatesAspectAndProjection(t *testing.T) {
	cam := newTestCamera()
	before := cam.Projection

	cam.Resize(800, 800)

	if cam.Aspect != 1 {
		t.Errorf("expected aspect 1, got %f", cam.Aspect)
	}
	if cam.Projection == before {
		t.Error("expected projection to change after resize")
	}
	if math.Abs(float64(cam.Projection[0]-cam.Projection[5])) > 1e-6 {
		t.Errorf("square viewport should give equal x/y scale, got %f and %f",
			cam.Projection[0], cam.Projection[5])
	}
}

func TestResizeIdempotent(t *testing.T) {
	once := newTestCamera()
	once.Resize(1024, 768)

	twice := newTestCamera()
	twice.Resize(1024, 768)
	twice.Resize(1024, 768)

	if *once != *twice {
		t.Errorf("resizing twice differs from once:\n%+v\n%+v", *once, *twice)
	}
}

func TestResizeIgnoresEmptyViewport(t *testing.T) {
	cam := newTestCamera()
	before := *cam

	cam.Resize(0, 720)
	cam.Resize(1280, -1)

	if *cam != before {
		t.Error("expected degenerate resize to be ignored")
	}
}

func TestProjectCenter(t *testing.T) {
	cam := newTestCamera()

	// A point straight ahead should land at screen center
	sx, sy, ok := cam.Project([3]float32{0, 0, -900})
	if !ok {
		t.Fatal("expected point ahead to be visible")
	}
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := newTestCamera()

	if _, _, ok := cam.Project([3]float32{0, 0, 900}); ok {
		t.Error("point behind the eye should not project")
	}
	if _, _, ok := cam.Project([3]float32{0, 0, -5000}); ok {
		t.Error("point beyond the far plane should not project")
	}
}

func TestProjectOrientation(t *testing.T) {
	cam := newTestCamera()

	// +X is screen right, +Y is screen up (smaller sy)
	sx, _, ok := cam.Project([3]float32{100, 0, -900})
	if !ok || sx <= 640 {
		t.Errorf("expected +X on the right half, got x=%f ok=%v", sx, ok)
	}
	_, sy, ok := cam.Project([3]float32{0, 100, -900})
	if !ok || sy >= 360 {
		t.Errorf("expected +Y on the upper half, got y=%f ok=%v", sy, ok)
	}
}

func TestInFrustum(t *testing.T) {
	cam := newTestCamera()

	tests := []struct {
		name   string
		p      [3]float32
		radius float32
		want   bool
	}{
		{"ahead", [3]float32{0, 0, -900}, 1, true},
		{"behind", [3]float32{0, 0, 900}, 1, false},
		{"far off to the side", [3]float32{5000, 0, -900}, 1, false},
		{"edge with large radius", [3]float32{1000, 0, -900}, 200, true},
		{"past far plane", [3]float32{0, 0, -2500}, 1, false},
	}

	for _, tc := range tests {
		if got := cam.InFrustum(tc.p, tc.radius); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestLookingAlongY(t *testing.T) {
	cam := New(60, 0.1, 2000, [3]float32{0, 10, 0}, [3]float32{0, 0, 0}, 800, 600)

	// Straight down the -Y axis must still resolve to screen center
	sx, sy, ok := cam.Project([3]float32{0, -500, 0})
	if !ok {
		t.Fatal("expected point below to be visible")
	}
	if math.Abs(float64(sx-400)) > 0.01 || math.Abs(float64(sy-300)) > 0.01 {
		t.Errorf("expected (400, 300), got (%f, %f)", sx, sy)
	}
}
