// Package pointcloud provides simple 3D point containers that satisfy the
// kdindex Source and Point contracts in three storage formats: plain float32
// or float64 triples, half-precision triples and gonum r3 vectors.
package pointcloud
