package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarwork/crewledger/internal/model"
)

func ptr(f float64) *float64 { return &f }

func pin(id string, projectID string, x, y float64, page int) model.WorkEntry {
	return model.WorkEntry{
		ID: id, Type: model.EntryTask, ProjectID: projectID,
		X: ptr(x), Y: ptr(y), PageNum: page,
		Workers: []model.TaskWorker{{WorkerID: "w1", WorkerCode: "A"}},
	}
}

func TestScreenDocRoundTrip(t *testing.T) {
	viewports := []Viewport{
		NewViewport(1.0, 1),
		NewViewport(1.5, 1),
		{BaseScale: 1.5, Zoom: 2.0, PanX: 40, PanY: -25, PageNum: 1},
		{BaseScale: 0.8, Zoom: 0.5, PanX: -300, PanY: 120, PageNum: 3},
	}

	for _, v := range viewports {
		dx, dy := v.ScreenToDoc(200, 150)
		sx, sy := v.DocToScreen(dx, dy)
		assert.InDelta(t, 200, sx, 1e-9)
		assert.InDelta(t, 150, sy, 1e-9)
	}
}

func TestStoredCoordinatesIndependentOfView(t *testing.T) {
	// The same screen point maps to different doc coordinates under
	// different transforms; stored pins are doc-space so the transform
	// never rewrites them.
	flat := NewViewport(1.0, 1)
	zoomed := Viewport{BaseScale: 1.0, Zoom: 2.0, PanX: 100, PanY: 50, PageNum: 1}

	fx, fy := flat.ScreenToDoc(300, 200)
	zx, zy := zoomed.ScreenToDoc(300, 200)
	assert.NotEqual(t, fx, zx)
	assert.NotEqual(t, fy, zy)

	// Converting a doc point out and back through either view is exact.
	sx, sy := zoomed.DocToScreen(fx, fy)
	gx, gy := zoomed.ScreenToDoc(sx, sy)
	assert.InDelta(t, fx, gx, 1e-9)
	assert.InDelta(t, fy, gy, 1e-9)
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.1, MinZoom},
		{0.5, 0.5},
		{1.7, 1.7},
		{3.0, 3.0},
		{5.0, MaxZoom},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampZoom(tt.in))
	}

	v := NewViewport(1.0, 1)
	v = v.WithZoom(10)
	assert.Equal(t, MaxZoom, v.Zoom)
	v = v.WithZoom(-10)
	assert.Equal(t, MinZoom, v.Zoom)
}

func TestPanAndReset(t *testing.T) {
	v := NewViewport(1.0, 2).WithPan(30, -10).WithZoom(0.5)
	assert.Equal(t, 30.0, v.PanX)
	assert.Equal(t, 1.5, v.Zoom)

	v = v.Reset()
	assert.Equal(t, 1.0, v.Zoom)
	assert.Zero(t, v.PanX)
	assert.Zero(t, v.PanY)
	assert.Equal(t, 2, v.PageNum, "reset keeps the page")
}

func TestHitTestTolerance(t *testing.T) {
	v := NewViewport(1.0, 1)
	pins := []model.WorkEntry{pin("target", "p1", 100, 100, 1)}

	// At scale 1 the tolerance is 15 screen px.
	_, ok := v.HitTest(114, 100, "p1", pins)
	assert.True(t, ok, "14 px away is inside the radius")

	_, ok = v.HitTest(116, 100, "p1", pins)
	assert.False(t, ok, "16 px away is outside the radius")
}

func TestHitTestRadiusShrinksInDocSpaceWhenZoomed(t *testing.T) {
	// At zoom 3 the 15 screen px tolerance is 5 doc units.
	v := Viewport{BaseScale: 1.0, Zoom: 3.0, PageNum: 1}
	pins := []model.WorkEntry{pin("target", "p1", 100, 100, 1)}

	// Screen position of a point 4 doc units right of the pin.
	sx, sy := v.DocToScreen(104, 100)
	_, ok := v.HitTest(sx, sy, "p1", pins)
	assert.True(t, ok)

	sx, sy = v.DocToScreen(106, 100)
	_, ok = v.HitTest(sx, sy, "p1", pins)
	assert.False(t, ok)
}

func TestHitTestScoping(t *testing.T) {
	v := NewViewport(1.0, 1)
	pins := []model.WorkEntry{
		pin("other-project", "p2", 100, 100, 1),
		pin("other-page", "p1", 100, 100, 2),
		{ID: "no-position", Type: model.EntryTask, ProjectID: "p1", PageNum: 1},
		{ID: "hourly", Type: model.EntryHourly, WorkerID: "w1"},
		pin("match", "p1", 100, 100, 1),
	}

	hit, ok := v.HitTest(100, 100, "p1", pins)
	require.True(t, ok)
	assert.Equal(t, "match", hit.ID)
}

func TestHitTestFirstMatchWins(t *testing.T) {
	v := NewViewport(1.0, 1)
	pins := []model.WorkEntry{
		pin("first", "p1", 102, 100, 1),
		pin("closer", "p1", 100, 100, 1),
	}

	hit, ok := v.HitTest(100, 100, "p1", pins)
	require.True(t, ok)
	assert.Equal(t, "first", hit.ID)
}
