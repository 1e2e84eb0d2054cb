// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/utils"
)

const defaultDatabase = ".counter-cli"

// environment is read from the process environment after loading an
// optional .env file. Flags take precedence.
type environment struct {
	CounterAddr string `env:"COUNTER_ADDR"`
	Database    string `env:"COUNTER_CLI_DATABASE" envDefault:".counter-cli"`
	Config      string `env:"COUNTER_CONFIG"`
}

var (
	handler *Handler

	dbPath      string
	configPath  string
	counterAddr string
	skipConfirm bool

	rootCmd = &cobra.Command{
		Use:        "counter-cli",
		Short:      "Access-controlled counter CLI",
		SuggestFor: []string{"counter-cli", "countercli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		keyCmd,
		deployCmd,
		ownerCmd,
		currentCmd,
		incrementCmd,
		decrementCmd,
		resetCmd,
		transferOwnershipCmd,
		interactCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPath,
		"database",
		defaultDatabase,
		"path to key database (will create it missing)",
	)
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"",
		"path to ledger config (json or yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&counterAddr,
		"counter",
		"",
		"counter address (defaults to COUNTER_ADDR, then the last deployed counter)",
	)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// A missing .env file is not an error.
		_ = godotenv.Load()
		var e environment
		if err := env.Parse(&e); err != nil {
			return err
		}
		if !cmd.Flags().Changed("database") {
			dbPath = e.Database
		}
		if !cmd.Flags().Changed("config") {
			configPath = e.Config
		}
		if !cmd.Flags().Changed("counter") {
			counterAddr = e.CounterAddr
		}

		utils.Outf("{{yellow}}database:{{/}} %s\n", dbPath)
		root, err := cli.New(NewController(dbPath))
		if err != nil {
			return err
		}
		handler = NewHandler(root, configPath, counterAddr)
		return nil
	}
	rootCmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		return handler.Close()
	}
	rootCmd.SilenceErrors = true

	// key
	keyCmd.AddCommand(
		genKeyCmd,
		importKeyCmd,
		listKeyCmd,
		setKeyCmd,
		addressKeyCmd,
	)

	// counter
	transferOwnershipCmd.PersistentFlags().BoolVar(
		&skipConfirm,
		"yes",
		false,
		"transfer without asking for confirmation",
	)
}

func Execute() error {
	return rootCmd.Execute()
}
