package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bdube/infinitime/dfu"
)

func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <watch-path>",
		Short: "Create a directory on the watch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := connect(ctx)
			if err != nil {
				return err
			}
			return sess.CreateDir(ctx, args[0], dfu.Now())
		},
	}
}
