// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package iitii

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildIIT(items []ivl) *IIT[int, ivl] {
	b := NewBuilder[int, ivl](ivlBeg, ivlEnd)
	for _, it := range items {
		b.Add(it)
	}
	return b.Build()
}

func TestIITEmpty(t *testing.T) {
	t.Parallel()

	tr := buildIIT(nil)
	require.Equal(t, 0, tr.Len())

	got, cost := tr.Overlap(0, 10)
	require.Empty(t, got)
	require.Zero(t, cost)
}

func TestIITSinglePoint(t *testing.T) {
	t.Parallel()

	tr := buildIIT([]ivl{{Beg: 5, End: 6, Tag: 0}})
	require.Equal(t, 1, tr.Len())

	got, _ := tr.Overlap(0, 10)
	require.Len(t, got, 1)

	got, _ = tr.Overlap(6, 10)
	require.Empty(t, got)

	got, _ = tr.Overlap(0, 5)
	require.Empty(t, got)
}

func TestIITAdjacentNonOverlapping(t *testing.T) {
	t.Parallel()

	items := []ivl{{Beg: 10, End: 20, Tag: 0}, {Beg: 20, End: 30, Tag: 1}}
	tr := buildIIT(items)

	got, _ := tr.Overlap(20, 21)
	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].Tag)

	got, _ = tr.Overlap(19, 20)
	require.Len(t, got, 1)
	require.Equal(t, 0, got[0].Tag)

	got, _ = tr.Overlap(0, 10)
	require.Empty(t, got)
}

func TestIITDuplicateBegin(t *testing.T) {
	t.Parallel()

	items := []ivl{
		{Beg: 5, End: 7, Tag: 0},
		{Beg: 5, End: 9, Tag: 1},
		{Beg: 5, End: 6, Tag: 2},
	}
	tr := buildIIT(items)

	got, _ := tr.Overlap(6, 7)
	require.ElementsMatch(t, []int{0, 1}, tagsOf(got))

	got, _ = tr.Overlap(0, 100)
	require.ElementsMatch(t, []int{0, 1, 2}, tagsOf(got))
}

func TestIITEmptyQueryRange(t *testing.T) {
	t.Parallel()

	tr := buildIIT([]ivl{{Beg: 0, End: 10, Tag: 0}})
	got, cost := tr.Overlap(5, 5)
	require.Empty(t, got)
	require.Zero(t, cost)
}

func TestIITInsideMaxEndInvariant(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	items := randomIvls(rng, 500, 10_000, 50)
	tr := buildIIT(items)

	n := tr.Len()
	for r := 0; r < n; r++ {
		k := level(uint64(r))
		lo := leftmostLeaf(uint64(r), k)
		hi := rightmostLeaf(uint64(r), k)
		if int(hi) >= n {
			hi = uint64(n - 1)
		}
		want := 0
		for i := lo; i <= hi; i++ {
			if e := tr.end(tr.nodes[i].Item); e > want {
				want = e
			}
		}
		require.Equal(t, want, tr.Node(r).InsideMaxEnd(), "rank %d", r)
	}
}

func TestIITMatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	items := randomIvls(rng, 2000, 5000, 40)
	tr := buildIIT(items)

	for i := 0; i < 300; i++ {
		qbeg := rng.Intn(5000)
		qend := qbeg + rng.Intn(200)
		got, _ := tr.Overlap(qbeg, qend)
		want := bruteOverlap(items, qbeg, qend)
		require.ElementsMatch(t, byTag(want), byTag(got), "qbeg=%d qend=%d", qbeg, qend)
	}
}

func tagsOf(items []ivl) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Tag
	}
	return out
}
