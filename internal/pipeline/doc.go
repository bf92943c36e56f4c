// Package pipeline runs a gitleaks report through a fixed sequence of steps:
// load, filter, partition and render.
//
// Each step implements Step and works on a shared Run. The Pipeline executes
// steps in order, logs each one and stops at the first error, so a failed
// load never produces output. Steps run on a single goroutine; the context
// is only checked between steps.
package pipeline
