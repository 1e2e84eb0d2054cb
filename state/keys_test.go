// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasPermissions(t *testing.T) {
	tests := []struct {
		name     string
		perm     Permissions
		canRead  bool
		canAlloc bool
		canWrite bool
	}{
		{
			name:    "read",
			perm:    Read,
			canRead: true,
		},
		{
			name:     "read and write",
			perm:     Read | Write,
			canRead:  true,
			canWrite: true,
		},
		{
			name:     "allocate",
			perm:     Allocate,
			canRead:  true,
			canAlloc: true,
		},
		{
			name:     "all",
			perm:     All,
			canRead:  true,
			canAlloc: true,
			canWrite: true,
		},
		{
			name: "none",
			perm: None,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			require.Equal(tt.canRead, tt.perm.Has(Read))
			require.Equal(tt.canAlloc, tt.perm.Has(Allocate))
			require.Equal(tt.canWrite, tt.perm.Has(Write))
		})
	}
}

func TestKeysAdd(t *testing.T) {
	require := require.New(t)

	keys := Keys{"a": Read}
	keys.Add("a", Write)
	require.True(keys["a"].Has(Read | Write))
	require.False(keys["a"].Has(Allocate))

	keys.Union(Keys{"b": All, "a": Allocate})
	require.True(keys["a"].Has(All))
	require.True(keys["b"].Has(All))
}
