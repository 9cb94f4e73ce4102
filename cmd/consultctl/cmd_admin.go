package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"consultancy/internal/backend"
	"consultancy/internal/domain/admin"
)

func newAdminCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard access grants",
	}

	var userID string
	grant := &cobra.Command{
		Use:   "grant <email>",
		Short: "Allow an account into the admin dashboard",
		Long: `Adds an admin_users row for email. The row id is --user-id, or the id of
the account registered under email when one exists, so either lookup grants access.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()
			ctx := cmd.Context()

			g := &admin.Grant{ID: userID, Email: args[0]}
			if g.ID == "" {
				id, err := e.auth.LookupUserID(ctx, args[0])
				switch {
				case err == nil:
					g.ID = id
				case !errors.Is(err, backend.ErrNotFound):
					return err
				}
			}

			if err := admin.NewGrantRepository(e.store).Create(ctx, g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "granted %s\n", g.Email)
			return nil
		},
	}
	grant.Flags().StringVar(&userID, "user-id", "", "account id to grant when it differs from the email lookup")
	cmd.AddCommand(grant)

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <email>",
		Short: "Remove dashboard access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()

			if err := admin.NewGrantRepository(e.store).DeleteByEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List admin grants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()

			grants, err := admin.NewGrantRepository(e.store).List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tID\tGRANTED")
			for _, g := range grants {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Email, g.ID, g.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	})

	return cmd
}
