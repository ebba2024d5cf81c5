package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <path>",
		Short: "List a directory on the watch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := connect(ctx)
			if err != nil {
				return err
			}
			entries, err := sess.ListDir(ctx, args[0])
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%8d  %s\n", e.Size, e.Path)
			}
			return nil
		},
	}
}
