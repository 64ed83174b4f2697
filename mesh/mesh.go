// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the minimal index-based topology collaborator
// that indata.FromMesh consumes. It is deliberately thin: mesh/graph
// construction, editing, and higher-level datastructure concerns are out
// of scope for the dynamic-relaxation core (spec §1) and remain the
// caller's responsibility; this type only has to enumerate vertices with
// xyz coordinates and edges as index pairs.
package mesh

// Graph is a dense, already-indexed vertex/edge topology.
type Graph struct {
	xyz   [][3]float64
	edges [][2]int
}

// New builds a Graph from dense vertex coordinates and index-pair edges.
// Callers with a richer mesh/graph representation (e.g. a half-edge
// structure or an adjacency-list graph) adapt it to this shape themselves,
// exactly as the original's from_mesh renumbers an arbitrary datastructure
// to dense [0,n) indices before handing it to the solver.
func New(xyz [][3]float64, edges [][2]int) *Graph {
	g := &Graph{
		xyz:   append([][3]float64(nil), xyz...),
		edges: append([][2]int(nil), edges...),
	}
	return g
}

// VertexCount implements indata.Mesh.
func (g *Graph) VertexCount() int { return len(g.xyz) }

// VertexXYZ implements indata.Mesh.
func (g *Graph) VertexXYZ(i int) [3]float64 { return g.xyz[i] }

// Edges implements indata.Mesh.
func (g *Graph) Edges() [][2]int { return g.edges }
