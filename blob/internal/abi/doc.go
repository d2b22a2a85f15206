// Package abi provides internal utilities for the blob codec.
//
// # Contents
//
//   - helpers.go: checked uint32 arithmetic and region aliasing checks
//
// This package is internal to blob.
package abi
