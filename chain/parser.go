// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/ava-labs/countervm/codec"

// Parser holds the decoders for every [Action] and [Auth] a chain accepts.
type Parser struct {
	actions *codec.TypeParser[Action]
	auths   *codec.TypeParser[Auth]
}

func NewParser(actions *codec.TypeParser[Action], auths *codec.TypeParser[Auth]) *Parser {
	return &Parser{actions: actions, auths: auths}
}

func (p *Parser) Actions() *codec.TypeParser[Action] {
	return p.actions
}

func (p *Parser) Auths() *codec.TypeParser[Auth] {
	return p.auths
}
