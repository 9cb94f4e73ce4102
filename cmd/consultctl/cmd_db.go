package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"consultancy/internal/backend"
	"consultancy/internal/domain/blog"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// open migrates
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "sessions", Short: "Maintain sign-in sessions"}
	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete expired or revoked sessions and used reset tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()

			sessions, resets, err := e.auth.Prune(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned sessions=%d password_resets=%d\n", sessions, resets)
			return nil
		},
	})
	return cmd
}

var demoPosts = []blog.PostInput{
	{
		Title:    "Five Signs Your Business Needs a Digital Strategy",
		Excerpt:  "Spot the moment ad-hoc tools stop scaling.",
		Content:  "## Growing pains\n\nWhen spreadsheets multiply and customers wait, it is time to plan.\n\n- Manual reporting\n- Disconnected tools\n- No online presence",
		Category: "Business",
		Tags:     []string{"strategy", "growth"},
		Status:   string(blog.StatusPublished),
	},
	{
		Title:      "Choosing a Stack for Your First Web App",
		Excerpt:    "A pragmatic guide for small teams.",
		Content:    "## Start simple\n\nPick tools your team already knows and that have a large community.",
		Category:   "Web Development",
		Tags:       []string{"web", "tutorial"},
		Status:     string(blog.StatusPublished),
		IsFeatured: true,
	},
	{
		Title:    "Branding on a Budget",
		Content:  "Draft notes on logos, colour and voice.",
		Category: "Digital Marketing",
		Tags:     []string{"branding"},
	},
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo blog posts; existing slugs are left alone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()

			svc := blog.NewService(blog.NewRepository(e.store), e.log)
			author := backend.Identity{ID: "seed", Email: "team@" + e.cfg.BusinessDomain}
			created := 0
			for _, in := range demoPosts {
				_, err := svc.Create(cmd.Context(), author, in)
				if errors.Is(err, blog.ErrSlugTaken) {
					continue
				}
				if err != nil {
					return fmt.Errorf("seed %q: %w", in.Title, err)
				}
				created++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d posts\n", created, len(demoPosts))
			return nil
		},
	}
}
