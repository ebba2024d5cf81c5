package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/bdube/infinitime/dfu"
)

func newPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <local-path> <watch-path>",
		Short: "Upload a local file to the watch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			sess, err := connect(ctx)
			if err != nil {
				return err
			}
			return sess.WriteFile(ctx, args[1], data, dfu.Now())
		},
	}
}
