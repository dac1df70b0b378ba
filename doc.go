// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package iitii implements an in-memory interval index over half-open
// intervals [beg, end) associated with arbitrary payload items.
//
// Two index flavors share the same node layout and sorted array:
//
//   - IIT, the implicit interval tree: a complete binary tree embedded in
//     a single sorted array of nodes, augmented bottom-up with the maximum
//     end-position of each node's real subtree. Queries descend top-down
//     from the root.
//
//   - Iitii, IIT plus a learned interpolation index: a piecewise linear
//     model over begin-positions predicts an interior node at which a
//     bottom-up climb can begin, and two augment values
//     (inside_max_end, outside_max_end) plus an O(1) outside_min_beg
//     computation give a necessary-and-sufficient predicate for when the
//     climb may stop and a local scan is complete.
//
// Both index types are built once via Builder and are immutable and safe
// for concurrent read thereafter. There is no insert, delete, or join
// against another index.
package iitii
