// Package geom holds the planar data model shared by every solver: points,
// instances (ordered city sets) and batches, plus the Euclidean distance
// metric and its dense symmetric matrix form.
//
// An Instance's order is the indexing convention used by tours: city i is
// inst[i]. Order carries no weight for distance.
//
// Distance matrices are gonum *mat.SymDense values so that solvers can accept
// any mat.Symmetric and symmetry holds by construction.
package geom
