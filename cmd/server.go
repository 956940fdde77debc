package cmd

import (
	"github.com/spf13/cobra"

	"javiradio/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the JaviRadio HTTP server",
	Long:  `Start the JaviRadio HTTP server, serving the playlist API and the web UI.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
