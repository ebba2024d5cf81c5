package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the watch's firmware version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := connect(ctx)
			if err != nil {
				return err
			}
			v, err := sess.Version(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("firmware version: %d\n", v)
			return nil
		},
	}
}
