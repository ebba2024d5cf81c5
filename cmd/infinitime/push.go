package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bdube/infinitime/resources"
)

func newPushCmd() *cobra.Command {
	var manifestPath string
	cmd := &cobra.Command{
		Use:   "push <resource-root>",
		Short: "Push a manifest's worth of fonts and images to the watch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := resources.Load(manifestPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			sess, err := connect(ctx)
			if err != nil {
				return err
			}
			return resources.Push(ctx, sess, m, args[0], log)
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "resources.json", "path to the resources manifest")
	return cmd
}
