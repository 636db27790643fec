//go:build mddecordebug

package decor

// debugAssertions makes every build panic on an ordering defect.
const debugAssertions = true
