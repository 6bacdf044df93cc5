// Package palette holds two unrelated hierarchies in one directory; both
// merge into a single generated file. The package name here is what the
// generator sniffs, regardless of the directory name.
package palette
