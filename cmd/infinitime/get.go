package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "get <watch-path>",
		Short: "Download a file from the watch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return fmt.Errorf("watch path must not be empty")
			}
			ctx := context.Background()
			sess, err := connect(ctx)
			if err != nil {
				return err
			}
			data, err := sess.ReadFile(ctx, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = path.Base(args[0])
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "local file to write (default: the watch path's basename)")
	return cmd
}
