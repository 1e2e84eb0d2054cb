// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys holds the name of each key a transaction touches and its permission
// (Read/Allocate/Write). To prevent duplicate insertions from overriding
// the original permissions, use [Keys.Add].
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

// Add unions [permission] into any permission already held for [name].
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Union merges every key in [other] into [k].
func (k Keys) Union(other Keys) {
	for name, permission := range other {
		k.Add(name, permission)
	}
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
