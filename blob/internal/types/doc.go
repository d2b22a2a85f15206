// Package types defines the closed set of field type tags.
//
// Every field in a buffer begins with a 4-byte signed tag. The registry
// maps each tag to its fixed payload size, or to Variable for the
// composite tags whose size depends on their contents.
//
// This package is internal to blob.
package types
