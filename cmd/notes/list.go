package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/oliverisaac/notes/store"
	"github.com/spf13/cobra"
)

func newListCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every note, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}

			st := store.New(cfg.DBPath)
			defer st.Close()

			return printNotes(cmd.Context(), st, cmd.OutOrStdout())
		},
	}
}

func printNotes(ctx context.Context, st noteStore, w io.Writer) error {
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	notes, err := st.ListNotes(ctx)
	if err != nil {
		return err
	}

	for _, n := range notes {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", n.ID, n.CreatedAt.Format(time.RFC3339), n.Content); err != nil {
			return err
		}
	}
	return nil
}
