package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/app/bootstrap"
)

var (
	configPath string
	password   string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the demo content workspace",
	Long: `Seed creates the demo users, team, platforms, posts and templates in the
configured store. It does nothing when the store already has users.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := bootstrap.Seed(cmd.Context(), configPath, password)
		if err != nil {
			return err
		}
		if !res.Seeded {
			fmt.Fprintln(cmd.OutOrStdout(), "store already has users; nothing seeded")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d posts, %d templates\n", res.Users, res.Posts, res.Templates)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "configs/default.yaml", "path to the service config file")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "password for the demo users (defaults to the configured demo password)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
