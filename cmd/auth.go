package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	var (
		configFile string
		debugMode  bool
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Google account credentials",
	}

	addCmd := &cobra.Command{
		Use:   "add <account>",
		Short: "Authorize a Google account interactively",
		Long: `Run the interactive OAuth consent flow for an account and store the
resulting credential. A browser window opens for consent; the flow fails
after 30 seconds without a grant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, debugMode)

			store, err := newCredentialStore(cfg, logger)
			if err != nil {
				return err
			}

			account := args[0]
			if !store.AddAccount(cmd.Context(), account) {
				return fmt.Errorf("authorization failed for account %q", account)
			}

			fmt.Printf("Account %q authorized. Credential stored in %s\n", account, store.TokenDir())
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, debugMode)

			store, err := newCredentialStore(cfg, logger)
			if err != nil {
				return err
			}

			accounts := store.ListAccounts()
			if len(accounts) == 0 {
				fmt.Println("No accounts configured. Run \"calendar-agent auth add <account>\" first.")
				return nil
			}
			for _, account := range accounts {
				fmt.Println(account)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)

	return cmd
}
