// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package iitii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpIIT(t *testing.T) {
	t.Parallel()

	tr := buildIIT([]ivl{{Beg: 1, End: 5, Tag: 0}, {Beg: 2, End: 3, Tag: 1}})
	s := tr.dumpString()
	require.True(t, strings.Contains(s, "IIT:"))
	require.True(t, strings.Contains(s, "rank"))
}

func TestDumpIitii(t *testing.T) {
	t.Parallel()

	it := buildIitii([]ivl{{Beg: 1, End: 5, Tag: 0}, {Beg: 2, End: 3, Tag: 1}}, 4)
	var sb strings.Builder
	it.Dump(&sb)
	s := sb.String()
	require.True(t, strings.Contains(s, "domains:"))
	require.True(t, strings.Contains(s, "outsideMaxEnd"))
}
