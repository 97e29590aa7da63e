// Package guard provides ConstructorGuard, a marker embedded in domain objects,
// commands and queries so that values built without their constructor can be
// detected and rejected.
package guard
