package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"consultancy/internal/domain/admin"
)

func newUserCmd(opts *rootOptions) *cobra.Command {
	var (
		email    string
		password string
		grant    bool
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a sign-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()
			ctx := cmd.Context()

			id, err := e.auth.SignUp(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", id.Email, id.ID)

			if grant {
				if err := admin.NewGrantRepository(e.store).Create(ctx, &admin.Grant{ID: id.ID, Email: id.Email}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "granted %s\n", id.Email)
			}
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "account email")
	create.Flags().StringVar(&password, "password", "", "account password")
	create.Flags().BoolVar(&grant, "admin", false, "also grant dashboard access")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd := &cobra.Command{Use: "user", Short: "Manage sign-in accounts"}
	cmd.AddCommand(create)
	return cmd
}
