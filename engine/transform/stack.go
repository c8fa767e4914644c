// Package transform provides the matrix stack used to place shape instances relative to a parent frame.
package transform

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrStackUnderflow is the panic value raised by Pop when no snapshot is stored.
	ErrStackUnderflow = errors.New("transform stack underflow: pop without matching push")

	// ErrUnbalanced is returned by AssertBalanced when snapshots remain at the end of a frame.
	ErrUnbalanced = errors.New("transform stack unbalanced")
)

// stack is the implementation of the Stack interface.
type stack struct {
	current   mgl32.Mat4
	snapshots []mgl32.Mat4
}

// Stack is a last-in-first-out sequence of matrix snapshots with one active matrix.
// Every transform operation post-multiplies the active matrix, so each operation applies in the
// reference frame established by the operations issued before it.
type Stack interface {
	// Current returns a copy of the active matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the active matrix
	Current() mgl32.Mat4

	// Set replaces the active matrix.
	//
	// Parameters:
	//   - m: the new active matrix
	Set(m mgl32.Mat4)

	// LoadIdentity resets the active matrix to identity without touching stored snapshots.
	LoadIdentity()

	// Push stores a copy of the active matrix.
	Push()

	// Pop removes the most recently pushed snapshot and makes it the active matrix.
	// Popping an empty stack is a programming error and panics with ErrStackUnderflow.
	//
	// Returns:
	//   - mgl32.Mat4: the restored matrix
	Pop() mgl32.Mat4

	// With runs fn between a Push and a deferred Pop, so the active matrix is restored
	// even if fn panics.
	//
	// Parameters:
	//   - fn: the scoped drawing function
	With(fn func())

	// Depth returns the number of stored snapshots.
	//
	// Returns:
	//   - int: the snapshot count
	Depth() int

	// Reset drops every snapshot and loads identity.
	Reset()

	// AssertBalanced reports whether every Push has been matched by a Pop.
	//
	// Returns:
	//   - error: ErrUnbalanced wrapped with the remaining depth, or nil
	AssertBalanced() error

	// Translate post-multiplies a translation.
	Translate(x, y, z float32)

	// RotateX post-multiplies a rotation about the local x axis, in degrees.
	RotateX(deg float32)

	// RotateY post-multiplies a rotation about the local y axis, in degrees.
	RotateY(deg float32)

	// RotateZ post-multiplies a rotation about the local z axis, in degrees.
	RotateZ(deg float32)

	// Rotate post-multiplies a rotation of deg degrees about an arbitrary axis.
	// A zero axis leaves the matrix unchanged.
	Rotate(deg float32, axis mgl32.Vec3)

	// Scale post-multiplies a non-uniform scale. A negative factor flips handedness.
	Scale(x, y, z float32)
}

var _ Stack = &stack{}

// NewStack creates a Stack whose active matrix is identity.
//
// Returns:
//   - Stack: the new stack
func NewStack() Stack {
	return &stack{
		current:   mgl32.Ident4(),
		snapshots: make([]mgl32.Mat4, 0, 16),
	}
}

func (s *stack) Current() mgl32.Mat4 {
	return s.current
}

func (s *stack) Set(m mgl32.Mat4) {
	s.current = m
}

func (s *stack) LoadIdentity() {
	s.current = mgl32.Ident4()
}

func (s *stack) Push() {
	s.snapshots = append(s.snapshots, s.current)
}

func (s *stack) Pop() mgl32.Mat4 {
	n := len(s.snapshots)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	s.current = s.snapshots[n-1]
	s.snapshots = s.snapshots[:n-1]
	return s.current
}

func (s *stack) With(fn func()) {
	s.Push()
	defer s.Pop()
	fn()
}

func (s *stack) Depth() int {
	return len(s.snapshots)
}

func (s *stack) Reset() {
	s.snapshots = s.snapshots[:0]
	s.current = mgl32.Ident4()
}

func (s *stack) AssertBalanced() error {
	if d := len(s.snapshots); d != 0 {
		return fmt.Errorf("%d snapshot(s) left: %w", d, ErrUnbalanced)
	}
	return nil
}

func (s *stack) Translate(x, y, z float32) {
	s.current = s.current.Mul4(mgl32.Translate3D(x, y, z))
}

func (s *stack) RotateX(deg float32) {
	s.current = s.current.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(deg)))
}

func (s *stack) RotateY(deg float32) {
	s.current = s.current.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(deg)))
}

func (s *stack) RotateZ(deg float32) {
	s.current = s.current.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(deg)))
}

func (s *stack) Rotate(deg float32, axis mgl32.Vec3) {
	if axis.Len() == 0 {
		return
	}
	s.current = s.current.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(deg), axis.Normalize()))
}

func (s *stack) Scale(x, y, z float32) {
	s.current = s.current.Mul4(mgl32.Scale3D(x, y, z))
}
