// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package iitii

import "slices"

// SortFunc sorts nodes in place. The default comparator sorts by
// (beg ascending, end ascending); a caller-pluggable sort is permitted as
// long as it honors that order, since every downstream invariant (the
// implicit-tree geometry, the augmentation passes, the climb predicate)
// assumes sorted-leaves.
type SortFunc[P Pos, I any] func(nodes []Node[P, I], beg BegFunc[P, I], end EndFunc[P, I])

// BuilderOption configures a Builder.
type BuilderOption[P Pos, I any] func(*builderConfig[P, I])

type builderConfig[P Pos, I any] struct {
	sort SortFunc[P, I]
}

// WithSort overrides the default (beg, end) sort with a caller-supplied
// strategy, e.g. a radix sort for a known Pos distribution.
func WithSort[P Pos, I any](fn SortFunc[P, I]) BuilderOption[P, I] {
	return func(c *builderConfig[P, I]) { c.sort = fn }
}

func defaultSort[P Pos, I any](nodes []Node[P, I], beg BegFunc[P, I], end EndFunc[P, I]) {
	slices.SortFunc(nodes, func(a, b Node[P, I]) int {
		ab, bb := beg(a.Item), beg(b.Item)
		switch {
		case ab < bb:
			return -1
		case ab > bb:
			return 1
		}
		ae, be := end(a.Item), end(b.Item)
		switch {
		case ae < be:
			return -1
		case ae > be:
			return 1
		default:
			return 0
		}
	})
}

// Builder accumulates items and produces an immutable index. A zero-value
// Builder is not usable; construct one with NewBuilder.
type Builder[P Pos, I any] struct {
	beg   BegFunc[P, I]
	end   EndFunc[P, I]
	sort  SortFunc[P, I]
	nodes []Node[P, I]
}

// NewBuilder creates a Builder over items whose positions are extracted by
// beg and end. beg(item) <= end(item) must hold for every added item.
func NewBuilder[P Pos, I any](beg BegFunc[P, I], end EndFunc[P, I], opts ...BuilderOption[P, I]) *Builder[P, I] {
	cfg := builderConfig[P, I]{sort: defaultSort[P, I]}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder[P, I]{beg: beg, end: end, sort: cfg.sort}
}

// Add appends a single item.
func (b *Builder[P, I]) Add(item I) {
	b.nodes = append(b.nodes, Node[P, I]{Item: item, insideMaxEnd: b.end(item), outsideMaxEnd: negInf[P]()})
}

// AddRange appends every item yielded by an iterator-like range function,
// in the style of range-over-func: seq is called with a yield callback and
// should stop calling it once yield returns false.
func (b *Builder[P, I]) AddRange(seq func(yield func(I) bool)) {
	seq(func(item I) bool {
		b.Add(item)
		return true
	})
}

// Build sorts the accumulated items and constructs a plain IIT: the base
// implicit interval tree with no interpolation model.
func (b *Builder[P, I]) Build() *IIT[P, I] {
	nodes := b.nodes
	b.sort(nodes, b.beg, b.end)
	t := &IIT[P, I]{beg: b.beg, end: b.end, nodes: nodes}
	t.rootLevel, t.fullSize = rootLevelFor(uint64(len(nodes)))
	t.augmentInsideMaxEnd()
	return t
}

// BuildIitii sorts the accumulated items, constructs the base IIT, then
// layers the interpolation index on top, partitioning the begin-range into
// domains equal-width domains (clamped to at least 1).
func (b *Builder[P, I]) BuildIitii(domains int) *Iitii[P, I] {
	if domains < 1 {
		domains = 1
	}
	base := b.Build()
	it := &Iitii[P, I]{IIT: *base}
	it.augmentOutsideMaxEnd()
	it.trainModel(domains)
	return it
}
