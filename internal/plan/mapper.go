// Package plan maps between screen space and plan-document space for
// pin placement on a zoomed, panned, paginated plan image.
package plan

import (
	"math"

	"github.com/solarwork/crewledger/internal/model"
)

// Zoom limits for the user zoom multiplier.
const (
	MinZoom = 0.5
	MaxZoom = 3.0
)

// HitRadiusPx is the pin hit-test tolerance in screen pixels. It is
// constant on screen regardless of zoom; HitTest divides it by the
// effective scale to get doc units.
const HitRadiusPx = 15.0

// Viewport is the live view transform for one rendered plan page.
// BaseScale is the fit-to-container scale computed once per page
// render; Zoom is the user multiplier; PanX/PanY are screen-space
// translation. Panning and zooming never touch stored entry
// coordinates, only this transform.
type Viewport struct {
	BaseScale float64
	Zoom      float64
	PanX      float64
	PanY      float64
	PageNum   int
}

// NewViewport returns an identity viewport for a page.
func NewViewport(baseScale float64, pageNum int) Viewport {
	return Viewport{BaseScale: baseScale, Zoom: 1.0, PageNum: pageNum}
}

// scale is the effective screen-pixels-per-doc-unit factor.
func (v Viewport) scale() float64 {
	return v.BaseScale * v.Zoom
}

// ScreenToDoc converts a pointer position to unscaled plan-document
// coordinates.
func (v Viewport) ScreenToDoc(sx, sy float64) (dx, dy float64) {
	s := v.scale()
	return (sx - v.PanX) / s, (sy - v.PanY) / s
}

// DocToScreen converts plan-document coordinates to screen space.
func (v Viewport) DocToScreen(dx, dy float64) (sx, sy float64) {
	s := v.scale()
	return dx*s + v.PanX, dy*s + v.PanY
}

// WithZoom returns the viewport zoomed by delta, clamped to
// [MinZoom, MaxZoom], keeping pan untouched.
func (v Viewport) WithZoom(delta float64) Viewport {
	v.Zoom = ClampZoom(v.Zoom + delta)
	return v
}

// WithPan returns the viewport translated by a screen-space delta.
func (v Viewport) WithPan(dx, dy float64) Viewport {
	v.PanX += dx
	v.PanY += dy
	return v
}

// Reset returns the viewport at zoom 1 with no pan.
func (v Viewport) Reset() Viewport {
	return Viewport{BaseScale: v.BaseScale, Zoom: 1.0, PageNum: v.PageNum}
}

// ClampZoom bounds a zoom multiplier to the allowed range.
func ClampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// HitTest converts a screen point to doc space and returns the first
// candidate pin within the tolerance radius, restricted to the given
// project and the viewport's page. Candidates without a position never
// match. First match in iteration order wins; callers wanting
// nearest-pin behavior should pre-sort.
func (v Viewport) HitTest(sx, sy float64, projectID string, candidates []model.WorkEntry) (model.WorkEntry, bool) {
	dx, dy := v.ScreenToDoc(sx, sy)
	radius := HitRadiusPx / v.scale()

	for _, e := range candidates {
		if e.Type != model.EntryTask || !e.HasPosition() {
			continue
		}
		if e.ProjectID != projectID || e.PageNum != v.PageNum {
			continue
		}
		if math.Hypot(*e.X-dx, *e.Y-dy) <= radius {
			return e, true
		}
	}
	return model.WorkEntry{}, false
}
