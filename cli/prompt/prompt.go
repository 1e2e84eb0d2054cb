// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/manifoldco/promptui"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/utils"
)

var (
	ErrInputEmpty      = errors.New("input is empty")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrIndexOutOfRange = errors.New("index out-of-range")
	ErrZeroAmount      = errors.New("amount must be greater than zero")
)

func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := codec.ParseAddressBech32(consts.HRP, strings.TrimSpace(input))
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddressBech32(consts.HRP, strings.TrimSpace(recipient))
}

// Amount prompts for a base-10 amount that is greater than zero.
func Amount(label string) (*uint256.Int, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := parsePositive(input)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return nil, err
	}
	return parsePositive(rawAmount)
}

func parsePositive(input string) (*uint256.Int, error) {
	if len(strings.TrimSpace(input)) == 0 {
		return nil, ErrInputEmpty
	}
	amount, err := utils.ParseAmount(input)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}
	return amount, nil
}

func Choice(label string, max int) (int, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			index, err := strconv.Atoi(input)
			if err != nil {
				return err
			}
			if index >= max || index < 0 {
				return ErrIndexOutOfRange
			}
			return nil
		},
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(rawIndex)
}

func Bool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label: label + " (y/n)",
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			lower := strings.ToLower(input)
			if lower == "y" || lower == "n" {
				return nil
			}
			return ErrInvalidChoice
		},
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont := strings.ToLower(rawContinue)
	if cont == "n" {
		return false, nil
	}
	return true, nil
}
