package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ENW_BACK-END/internal/seed"
	"ENW_BACK-END/internal/store"
)

func newSeedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert starter content",
	}
	seedCmd.AddCommand(&cobra.Command{
		Use:   "blog",
		Short: "Insert the default blog categories and sample posts (idempotent by slug)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close(cmd.Context())

			res, err := seed.New(e.store, e.svc.Blog, e.log).Blog(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "categories: %d created, %d already present\n", res.CategoriesCreated, res.CategoriesSkipped)
			fmt.Fprintf(cmd.OutOrStdout(), "posts: %d created, %d already present\n", res.PostsCreated, res.PostsSkipped)
			return nil
		},
	})
	return seedCmd
}

func newIndexesCmd() *cobra.Command {
	indexesCmd := &cobra.Command{
		Use:   "indexes",
		Short: "Inspect and maintain storage indexes",
	}
	indexesCmd.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Create or sync the unique and secondary indexes, then list them",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close(cmd.Context())

			infos, err := e.svc.Maintenance.EnsureIndexes(cmd.Context())
			if err != nil {
				return err
			}
			printIndexes(cmd, infos)
			return nil
		},
	})
	return indexesCmd
}

func printIndexes(cmd *cobra.Command, infos []store.IndexInfo) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tNAME\tKEYS\tUNIQUE")
	for _, ix := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", ix.Collection, ix.Name, ix.Keys, ix.Unique)
	}
	_ = w.Flush()
}

func newDuplicatesCmd() *cobra.Command {
	var collection string
	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Report e-mail addresses stored more than once",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close(cmd.Context())

			groups, err := e.svc.Maintenance.FindDuplicateEmails(cmd.Context(), collection)
			if err != nil {
				return err
			}
			printDuplicates(cmd, collection, groups)
			return nil
		},
	}
	cmd.Flags().StringVarP(&collection, "collection", "c", store.CollVolunteers, "Collection to check (volunteers, seniors, partners)")
	return cmd
}

func printDuplicates(cmd *cobra.Command, collection string, groups []store.DuplicateGroup) {
	if len(groups) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no duplicate emails in %s\n", collection)
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tCOUNT\tIDS")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%d\t%v\n", g.Email, g.Count, g.IDs)
	}
	_ = w.Flush()
}
