// plane.go - The polymorphic plane contract and its reference-counted handle
//
// The source language dispatches through parallel function pointers to
// bypass vtables living in flash. Go has no flash-residency concern, but
// the shape is kept anyway: Plane is a tiny interface rather than a
// struct of function pointers, since Go interfaces already compile to a
// single indirect call with no vtable-in-ROM issue to work around.

package video

import "sync/atomic"

// Plane is the contract every renderer in the composition tree
// implements: Vblank once per frame, Render once per active scanline.
type Plane interface {
	// Vblank is called once per frame before any scanline render. It may
	// reset internal cursors, advance animation, or replace child
	// planes. It must not block.
	Vblank()

	// Render writes exactly width pixels for logical row into buf,
	// measured in DMA words. Writing fewer or more is a contract
	// violation the caller cannot detect cheaply and does not try to.
	Render(row, width int, buf []uint32)
}

// AlwaysRenderable is implemented by planes that may keep running while
// the engine is in a degraded/lockout-simulated state (see Engine.Degrade).
// This is the hosted-OS stand-in for "RAM-resident, safe during flash
// lockout" — backdrops and plain framebuffers implement it.
type AlwaysRenderable interface {
	AlwaysRenderable() bool
}

// PlaneRef is an atomic-refcounted handle to a Plane, giving the
// frontend/renderer split in §3 invariant 5 an observable liveness
// count even though Go's GC would keep the Plane alive regardless. This
// mirrors the teacher's preference for explicit atomic state over
// implicit reliance on the runtime wherever a cross-goroutine handoff is
// being modeled.
type PlaneRef struct {
	plane   Plane
	count   atomic.Int32
	onZero  func(Plane)
}

// NewPlaneRef wraps a plane with an initial reference count of 1. onZero,
// if non-nil, runs exactly once when the count reaches zero.
func NewPlaneRef(p Plane, onZero func(Plane)) *PlaneRef {
	r := &PlaneRef{plane: p, onZero: onZero}
	r.count.Store(1)
	return r
}

// Plane returns the wrapped plane. Valid only while the ref is held.
func (r *PlaneRef) Plane() Plane { return r.plane }

// Retain increments the reference count, used when a second owner (the
// renderer side) begins sharing the plane.
func (r *PlaneRef) Retain() *PlaneRef {
	r.count.Add(1)
	return r
}

// Release decrements the reference count; whichever caller drives it to
// zero runs the teardown hook.
func (r *PlaneRef) Release() {
	if r.count.Add(-1) == 0 && r.onZero != nil {
		r.onZero(r.plane)
		r.plane = nil
	}
}

// Count reports the current reference count, for tests.
func (r *PlaneRef) Count() int32 { return r.count.Load() }
