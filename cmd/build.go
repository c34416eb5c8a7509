package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the site into the output directory",
	Long: `The build command validates every post under './content/blog/' and the
profile, work history and certification tables, then renders the home page,
blog index, post pages and tag pages into the configured output directory
(default './public/'), copying assets from './static/'.

Draft posts are only included when 'development' is set in the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := site.NewBuilder(appConfig, logger).Build()
		return err
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
