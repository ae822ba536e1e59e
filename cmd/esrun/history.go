package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent request runs from the history store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("history store is not configured (set store.path in the config)")
		}
		defer func() { _ = store.Close() }()

		runs, err := store.List(viper.GetInt("limit"))
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-7s %-40s %3d  %5dms\n",
				r.RanAt, r.Method, r.URL, r.StatusCode, r.DurationMS)
		}
		return nil
	},
}
