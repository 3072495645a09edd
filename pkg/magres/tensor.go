// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Tensor arithmetic and NMR derived quantities
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"math"
	"sort"
)

// Trace returns the sum of the diagonal
func (t Tensor) Trace() float64 {
	return t[0][0] + t[1][1] + t[2][2]
}

// Iso returns the isotropic value, trace/3
func (t Tensor) Iso() float64 {
	return t.Trace() / 3
}

// Transpose returns the transposed tensor
func (t Tensor) Transpose() Tensor {
	var out Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = t[j][i]
		}
	}
	return out
}

// Symmetric returns (T + T^T) / 2
func (t Tensor) Symmetric() Tensor {
	tt := t.Transpose()
	var out Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = (t[i][j] + tt[i][j]) / 2
		}
	}
	return out
}

// Antisymmetric returns (T - T^T) / 2
func (t Tensor) Antisymmetric() Tensor {
	tt := t.Transpose()
	var out Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = (t[i][j] - tt[i][j]) / 2
		}
	}
	return out
}

const (
	jacobiMaxSweeps = 50
	jacobiEpsilon   = 1e-12
)

// Eigenvalues returns the eigenvalues of the symmetric part in ascending
// order, computed with cyclic Jacobi rotations
func (t Tensor) Eigenvalues() [3]float64 {
	a := t.Symmetric()

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		off := a[0][1]*a[0][1] + a[0][2]*a[0][2] + a[1][2]*a[1][2]
		if off < jacobiEpsilon*jacobiEpsilon {
			break
		}
		for p := 0; p < 2; p++ {
			for q := p + 1; q < 3; q++ {
				if a[p][q] == 0 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				tn := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				c := 1 / math.Sqrt(tn*tn+1)
				s := tn * c
				rotate(&a, p, q, c, s)
			}
		}
	}

	ev := []float64{a[0][0], a[1][1], a[2][2]}
	sort.Float64s(ev)
	return [3]float64{ev[0], ev[1], ev[2]}
}

// rotate applies A' = J^T A J for the Jacobi rotation J(p, q)
func rotate(a *Tensor, p, q int, c, s float64) {
	for k := 0; k < 3; k++ {
		akp, akq := a[k][p], a[k][q]
		a[k][p] = c*akp - s*akq
		a[k][q] = s*akp + c*akq
	}
	for k := 0; k < 3; k++ {
		apk, aqk := a[p][k], a[q][k]
		a[p][k] = c*apk - s*aqk
		a[q][k] = s*apk + c*aqk
	}
}

// Haeberlen returns the principal components ordered so that
// |zz - iso| >= |xx - iso| >= |yy - iso|
func (t Tensor) Haeberlen() (xx, yy, zz float64) {
	ev := t.Eigenvalues()
	iso := t.Iso()
	vals := ev[:]
	sort.SliceStable(vals, func(i, j int) bool {
		return math.Abs(vals[i]-iso) < math.Abs(vals[j]-iso)
	})
	return vals[1], vals[0], vals[2]
}

// Iso returns the isotropic shielding in ppm
func (r MsRecord) Iso() float64 {
	return r.Sigma.Iso()
}

// Aniso returns the shielding anisotropy zz - (xx + yy) / 2
func (r MsRecord) Aniso() float64 {
	xx, yy, zz := r.Sigma.Haeberlen()
	return zz - (xx+yy)/2
}

// Asymmetry returns the shielding asymmetry (yy - xx) / (zz - iso)
func (r MsRecord) Asymmetry() float64 {
	xx, yy, zz := r.Sigma.Haeberlen()
	red := zz - r.Sigma.Iso()
	if math.Abs(red) < jacobiEpsilon {
		return 0
	}
	return (yy - xx) / red
}

// efgPrincipal orders eigenvalues as |Vzz| >= |Vyy| >= |Vxx|
func efgPrincipal(v Tensor) (vxx, vyy, vzz float64) {
	ev := v.Eigenvalues()
	vals := ev[:]
	sort.SliceStable(vals, func(i, j int) bool {
		return math.Abs(vals[i]) < math.Abs(vals[j])
	})
	return vals[0], vals[1], vals[2]
}

// Vzz returns the principal component of largest magnitude
func (r EfgRecord) Vzz() float64 {
	_, _, vzz := efgPrincipal(r.V)
	return vzz
}

// Asymmetry returns eta = (Vxx - Vyy) / Vzz
func (r EfgRecord) Asymmetry() float64 {
	vxx, vyy, vzz := efgPrincipal(r.V)
	if math.Abs(vzz) < jacobiEpsilon {
		return 0
	}
	return (vxx - vyy) / vzz
}

// Iso returns the isotropic coupling K_iso
func (r IscRecord) Iso() float64 {
	return r.K.Iso()
}
