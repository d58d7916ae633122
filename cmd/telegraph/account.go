package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgonek/telegraph"
)

var (
	flagShortName  string
	flagAuthorName string
	flagAuthorURL  string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the publishing account",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account and print its access token",
	RunE:  runAccountCreate,
}

var accountInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show account fields",
	RunE:  runAccountInfo,
}

var accountEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update account fields",
	RunE:  runAccountEdit,
}

var accountRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke the access token and print the replacement",
	RunE:  runAccountRevoke,
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountCreateCmd, accountInfoCmd, accountEditCmd, accountRevokeCmd)

	for _, cmd := range []*cobra.Command{accountCreateCmd, accountEditCmd} {
		cmd.Flags().StringVar(&flagShortName, "short-name", "", "Account short name")
		cmd.Flags().StringVar(&flagAuthorName, "author-name", "", "Default author name for new pages")
		cmd.Flags().StringVar(&flagAuthorURL, "author-url", "", "Default author URL for new pages")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runAccountCreate(cmd *cobra.Command, _ []string) error {
	if flagShortName == "" {
		return fmt.Errorf("--short-name is required")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	account, err := client.CreateAccount(cmd.Context(), telegraph.CreateAccountRequest{
		ShortName:  flagShortName,
		AuthorName: flagAuthorName,
		AuthorURL:  flagAuthorURL,
	})
	if err != nil {
		return err
	}
	return printJSON(account)
}

func runAccountInfo(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	account, err := client.GetAccountInfo(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(account)
}

func runAccountEdit(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	account, err := client.EditAccountInfo(cmd.Context(), telegraph.EditAccountRequest{
		ShortName:  flagShortName,
		AuthorName: flagAuthorName,
		AuthorURL:  flagAuthorURL,
	})
	if err != nil {
		return err
	}
	return printJSON(account)
}

func runAccountRevoke(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	account, err := client.RevokeAccessToken(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(account)
}
