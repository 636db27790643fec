//go:build !mddecordebug

package decor

const debugAssertions = false
