package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Uraniumking007/frametracking/internal/cache"
	"github.com/Uraniumking007/frametracking/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve internal identifiers to display names",
}

var resolveNodeCmd = &cobra.Command{
	Use:   "node <code>...",
	Short: "Resolve node codes to location labels",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes := resolve.NewNodeResolver()
		for _, code := range args {
			label := nodes.Label(code)
			meta := nodes.Meta(code)
			if meta.Enemy != "" || meta.Type != "" {
				fmt.Printf("%s\t%s\t(%s, %s)\n", code, label, meta.Enemy, meta.Type)
			} else {
				fmt.Printf("%s\t%s\n", code, label)
			}
		}
		return nil
	},
}

var resolveItemCmd = &cobra.Command{
	Use:   "item <identifier>...",
	Short: "Resolve item identifiers to display names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items := resolve.NewItemResolver(cache.NewService(cache.Options{}))
		names := items.Many(args)
		for _, id := range args {
			fmt.Printf("%s\t%s\n", id, names[id])
		}
		return nil
	},
}

func init() {
	resolveCmd.AddCommand(resolveNodeCmd)
	resolveCmd.AddCommand(resolveItemCmd)
	rootCmd.AddCommand(resolveCmd)
}
