package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <watch-path>",
		Short: "Delete a file on the watch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := connect(ctx)
			if err != nil {
				return err
			}
			return sess.DeleteFile(ctx, args[0])
		},
	}
}
