package cla

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal draws zero-mean Gaussian vectors from symmetric positive
// semi-definite covariance matrices.
//
// Covariances are factorized with a symmetric eigen-decomposition rather than
// a Cholesky factorization, so singular covariances (for example the real
// embedding of a rank-deficient Hermitian matrix, or a zero time step) are
// accepted. Tiny negative eigenvalues from rounding are clamped to zero.
type Normal struct {
	std distuv.Normal
}

// NewNormal returns a sampler that takes its randomness from src.
func NewNormal(src rand.Source) *Normal {
	return &Normal{std: distuv.Normal{Mu: 0, Sigma: 1, Src: src}}
}

// Sample fills dst with a draw from N(0, cov). len(dst) must equal the
// dimension of cov. If cov cannot be factorized dst is filled with NaN.
func (n *Normal) Sample(dst []float64, cov mat.Symmetric) {
	dim := cov.SymmetricDim()
	if len(dst) != dim {
		panic(mat.ErrShape)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		nanFill(dst)
		return
	}
	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	for i := range dst {
		dst[i] = 0
	}
	for k, lambda := range values {
		scale := math.Sqrt(math.Max(lambda, 0)) * n.std.Rand()
		if scale == 0 {
			continue
		}
		for i := range dst {
			dst[i] += vecs.At(i, k) * scale
		}
	}
}
