package main

import (
	"os"

	"github.com/esrun/esrun/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "esrun",
	Short: "Execute request scripts against a document-search backend",
	Long: "esrun runs one or more HTTP request statements embedded in a script body\n" +
		"against a live search cluster, post-processes each response and aggregates\n" +
		"the results.",
}

func init() {
	// Defaults
	v := viper.GetViper()
	v.SetDefault("config", "")
	v.SetDefault("method", "")
	v.SetDefault("url", "")
	v.SetDefault("limit", 20)

	// Environment variables support: ESRUN_CONFIG, ESRUN_URL, ...
	v.SetEnvPrefix("ESRUN")
	v.AutomaticEnv()

	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a config yaml")
	runCmd.Flags().String("method", v.GetString("method"), "HTTP method for the implicit first statement")
	runCmd.Flags().String("url", v.GetString("url"), "target URL for the implicit first statement")
	runCmd.Flags().String("headers", "", "request headers as whitespace-separated name=value tokens")
	runCmd.Flags().String("jq", "", "jq filter spec (leading dash-flags, then the filter expression)")
	runCmd.Flags().String("shell", "", "shell command each response is piped through")
	runCmd.Flags().String("tablify", "", "record path rendered as a table (terminal stage)")
	runCmd.Flags().String("file", "", "write the aggregated result into this file instead of stdout")
	runCmd.Flags().StringArray("var", nil, "script variable as name=value (repeatable)")
	runCmd.Flags().Bool("yes", false, "answer destructive-request confirmations with yes")
	tangleCmd.Flags().String("method", v.GetString("method"), "HTTP method for the implicit first statement")
	tangleCmd.Flags().String("url", v.GetString("url"), "target URL for the implicit first statement")
	tangleCmd.Flags().StringArray("var", nil, "script variable as name=value (repeatable)")
	historyCmd.Flags().Int("limit", v.GetInt("limit"), "number of recent runs to list")

	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("limit", historyCmd.Flags().Lookup("limit"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tangleCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		common.GetLogger().Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
