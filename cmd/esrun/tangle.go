package main

import (
	"fmt"
	"os"

	"github.com/esrun/esrun"
	"github.com/spf13/cobra"
)

var tangleCmd = &cobra.Command{
	Use:   "tangle <script-file> <target>",
	Short: "Materialize a request script into a standalone file",
	Long: "Writes the variable-substituted script into the target file. A .sh target\n" +
		"becomes a runnable shell script with one curl command per statement.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// #nosec G304 -- the script path is the command's argument
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script %s: %w", args[0], err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		method, _ := cmd.Flags().GetString("method")
		url, _ := cmd.Flags().GetString("url")
		rawVars, _ := cmd.Flags().GetStringArray("var")
		vars, err := parseVars(rawVars)
		if err != nil {
			return err
		}

		params := esrun.Params{Method: method, URL: url, Vars: vars}
		return esrun.Tangle(cfg, string(data), params, args[1])
	},
}
