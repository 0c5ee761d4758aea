package voxel

import "errors"

// ErrChunkNotResident is returned when a mutation targets a chunk that is
// absent from the world and outside the residency window: the caller's
// write is rejected with no side effects.
var ErrChunkNotResident = errors.New("voxel: chunk not resident")
