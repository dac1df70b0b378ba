// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package iitii

import "math"

// candidateLevels is the sparse, Fibonacci-like sequence of tree levels
// tried when fitting each domain's predictor.
var candidateLevels = [...]uint{0, 1, 2, 4, 7, 12, 20, 33, 54}

type trainingPoint[P Pos] struct {
	beg  P
	rank uint64
}

// trainModel partitions the begin-range into c equal-width domains and
// fits a per-domain (level, w0, w1) predictor.
func (t *Iitii[P, I]) trainModel(c int) {
	n := len(t.nodes)
	t.domains = make([]domainParams, c)
	for i := range t.domains {
		t.domains[i].level = -1
	}
	if n == 0 {
		return
	}

	t.minBeg = t.beg(t.nodes[0].Item)
	t.maxBeg = t.beg(t.nodes[n-1].Item)
	t.domainWidth = domainWidth(t.minBeg, t.maxBeg, c)

	domainPoints := make([][]trainingPoint[P], c)
	for r := 0; r < n; r++ {
		x := t.beg(t.nodes[r].Item)
		d := t.domainIndex(x)
		domainPoints[d] = append(domainPoints[d], trainingPoint[P]{beg: x, rank: uint64(r)})
	}

	for d := 0; d < c; d++ {
		t.fitDomain(d, domainPoints[d])
	}
}

// fitDomain fits candidate levels in increasing order, recording each
// (k, w0, w1) whose estimated average cost beats both the top-down
// fallback (root_level) and every previously recorded cost for this
// domain, so the lowest-cost candidate is the one kept. Leaves the domain's level at the -1 sentinel if nothing
// qualifies: queries landing in this domain fall back to a root-start
// top-down scan.
func (t *Iitii[P, I]) fitDomain(d int, points []trainingPoint[P]) {
	if len(points) == 0 {
		return
	}

	buckets := make([][]trainingPoint[P], t.rootLevel+1)
	for _, p := range points {
		k := level(p.rank)
		if k <= t.rootLevel {
			buckets[k] = append(buckets[k], p)
		}
	}

	bestCost := float64(t.rootLevel)
	found := false

	for _, k := range candidateLevels {
		if k >= t.rootLevel {
			break
		}
		bucket := buckets[k]
		if len(bucket) <= 1 {
			break
		}

		w0, w1, ok := fitLine(bucket)
		if !ok {
			continue
		}

		cost := t.estimateCost(points, k, w0, w1)
		if cost < float64(t.rootLevel) && (!found || cost < bestCost) {
			bestCost = cost
			found = true
			t.domains[d] = domainParams{level: int32(k), w0: w0, w1: w1}
		}
	}
}

// fitLine performs ordinary least squares regression of level-rank on beg
// over bucket, in float64. Returns ok=false if the bucket's begin-positions
// have zero variance or the fitted slope is exactly zero.
func fitLine[P Pos](bucket []trainingPoint[P]) (w0, w1 float32, ok bool) {
	k := level(bucket[0].rank)

	n := float64(len(bucket))
	var sumX, sumY float64
	for _, p := range bucket {
		sumX += float64(p.beg)
		sumY += float64(levelRank(p.rank, k))
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for _, p := range bucket {
		dx := float64(p.beg) - meanX
		dy := float64(levelRank(p.rank, k)) - meanY
		sxx += dx * dx
		sxy += dx * dy
	}
	if sxx == 0 || sxy == 0 {
		return 0, 0, false
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX
	return float32(intercept), float32(slope), true
}

// estimateCost computes the average per-point training cost of predicting
// with (k, w0, w1) against every point in the domain: a distance-based
// error penalty plus an overlap penalty for predictions that land where an
// outside node could still require visiting, combined by taking the worse
// of the two.
func (t *Iitii[P, I]) estimateCost(points []trainingPoint[P], k uint, w0, w1 float32) float64 {
	n := uint64(len(t.nodes))
	rootLevel := t.rootLevel

	var total float64
	for _, p := range points {
		fx := t.interpolateRank(k, w0, w1, p.beg)

		errDist := math.Abs(float64(fx) - float64(p.rank))
		errUnits := errDist / float64(uint64(1)<<k)

		var errorPenalty float64
		if errUnits > 0 {
			errorPenalty = 2 * (1 + math.Floor(math.Log2(errUnits)))
		}

		clamped := fx
		if clamped >= n {
			clamped = n - 1
		}
		var overlapPenalty float64
		if t.nodes[clamped].outsideMaxEnd > p.beg {
			overlapPenalty = 1 + float64((rootLevel-k)/2)
		}

		pen := errorPenalty
		if overlapPenalty > pen {
			pen = overlapPenalty
		}
		total += float64(k) + pen
	}
	return total / float64(len(points))
}

// interpolateRank predicts the materialized rank for x at tree level k:
// round(w0 + w1*x) clamped below at 0, mapped through rankOfLevelRank.
// Stored parameters and the prediction itself stay in float32: the model is
// a cheap hint, not a precision-sensitive computation, and single precision
// keeps a trained domain table compact.
func (t *Iitii[P, I]) interpolateRank(k uint, w0, w1 float32, x P) uint64 {
	predicted := w0 + w1*float32(x)
	lr := int64(math.Round(float64(predicted)))
	if lr < 0 {
		lr = 0
	}
	return rankOfLevelRank(k, uint64(lr))
}

// domainWidth computes a positive domain width covering [minBeg, maxBeg]
// split into c equal slices. Integer Pos adds 1 to guarantee a non-zero
// width when minBeg == maxBeg; floating Pos instead falls back to a width
// of 1 when the span collapses to zero, since "+1" has no type-appropriate
// meaning for a continuous position.
func domainWidth[P Pos](minBeg, maxBeg P, c int) P {
	span := maxBeg - minBeg
	if isFloatKind[P]() {
		w := span / P(c)
		if w <= 0 {
			w = P(1)
		}
		return w
	}
	return 1 + span/P(c)
}

// domainIndex maps a begin-position to its domain, clamped to the valid
// range.
func (t *Iitii[P, I]) domainIndex(p P) int {
	c := len(t.domains)
	if p <= t.minBeg {
		return 0
	}
	if p >= t.maxBeg {
		return c - 1
	}
	d := int((p - t.minBeg) / t.domainWidth)
	if d >= c {
		d = c - 1
	}
	if d < 0 {
		d = 0
	}
	return d
}

// isFloatKind reports whether P's underlying kind is a floating-point
// type.
func isFloatKind[P Pos]() bool {
	var zero P
	switch any(zero).(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}
