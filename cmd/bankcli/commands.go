package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tiersept/example-app/models"
)

func newLoginCmd(opts *options) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.client.Login(cmd.Context(), username, password); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newAccountsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			accounts, err := s.client.Accounts(cmd.Context())
			if err != nil {
				return describe(err)
			}
			printAccounts(cmd.OutOrStdout(), accounts)
			return nil
		},
	}
}

func newCardsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List payment cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			cards, err := s.client.Cards(cmd.Context())
			if err != nil {
				return describe(err)
			}
			printCards(cmd.OutOrStdout(), cards)
			return nil
		},
	}
}

func newTransactionsCmd(opts *options) *cobra.Command {
	var q models.TransactionQuery

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Search, sort and page through transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			page, err := s.client.Transactions(cmd.Context(), q)
			if err != nil {
				return describe(err)
			}
			printTransactions(cmd.OutOrStdout(), page.Items)
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(page.Items), page.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "match description or type")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "sort field (date, amount, description, type)")
	cmd.Flags().StringVar(&q.Order, "order", "", "asc or desc")
	cmd.Flags().IntVar(&q.Page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	return cmd
}

func printAccounts(w io.Writer, accounts []models.Account) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\n", a.ID, a.Name, a.Balance)
	}
	tw.Flush()
}

func printCards(w io.Writer, cards []models.Card) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tEXPIRY")
	for _, c := range cards {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, maskNumber(c.Number), c.Expiry)
	}
	tw.Flush()
}

func printTransactions(w io.Writer, txs []models.Transaction) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tDESCRIPTION")
	for _, t := range txs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", t.ID, t.Date, t.Type, t.Amount, t.Description)
	}
	tw.Flush()
}

// maskNumber, kart numarasının son dört hanesi dışını gizler.
func maskNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
