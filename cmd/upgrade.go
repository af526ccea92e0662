package cmd

import (
	"context"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/mhristof/ghup/github"
	"github.com/mhristof/ghup/versions"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade to a version from the configured GitHub repository",
	Long: heredoc.Doc(`
		Compare the running version against the tags and branches of the
		configured GitHub repository and upgrade to the requested version.

		The repository ("owner/repo") is read from the 'repository' key of the
		config file. An optional API token comes from the 'token' key or from
		the [github] section of ~/.gitconfig.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := cmd.Flags().GetBool("list-versions")
		if err != nil {
			panic(err)
		}

		target, err := cmd.Flags().GetString("version")
		if err != nil {
			panic(err)
		}

		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			panic(err)
		}

		config := versions.Config{
			Repository:      viper.GetString("repository"),
			IncludeBranches: viper.GetBool("include_branches"),
			Token:           github.Token(viper.GetString("token")),
		}

		client, err := github.New(cmd.Context(), config.Repository, config.Token)
		if err != nil {
			return err
		}

		provider := versions.New(config, client)

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		name := cmd.Root().Name()

		if list {
			return provider.List(ctx, name, version)
		}

		if !force {
			outdated, err := provider.IsOutdated(ctx, name, version, target)
			if err != nil {
				return err
			}

			if !outdated {
				return nil
			}
		}

		return provider.Upgrade(ctx, versions.Request{
			Name: name,
			From: version,
			To:   target,
		})
	},
}

func init() {
	upgradeCmd.Flags().BoolP("list-versions", "l", false, "Print the available versions and exit")
	upgradeCmd.Flags().String("version", "latest", "Version to upgrade to")
	upgradeCmd.Flags().BoolP("force", "f", false, "Skip the outdated check")

	rootCmd.AddCommand(upgradeCmd)
}
