package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/esrun/esrun"
	"github.com/esrun/esrun/internal/common"
	"github.com/esrun/esrun/internal/script"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run [script-file]",
	Short: "Execute a request script (file argument or stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readScript(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		common.SetDefaultLogger(cfg.SetupLogger())

		params, err := paramsFromFlags(cmd)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		var confirm esrun.ConfirmFunc
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			confirm = func(method, url string) (bool, error) { return true, nil }
		}

		out, err := esrun.RunWithConfirm(cmd.Context(), cfg, store, body, params, confirm)
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

func readScript(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		// #nosec G304 -- the script path is the command's argument
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read script %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read script from stdin: %w", err)
	}
	return string(data), nil
}

func loadConfig() (esrun.Config, error) {
	path := strings.TrimSpace(viper.GetString("config"))
	if path == "" {
		return esrun.DefaultConfig(), nil
	}
	return esrun.LoadConfig(path)
}

func openStore(cfg esrun.Config) (*esrun.Store, error) {
	if cfg.Store.Disabled || strings.TrimSpace(cfg.Store.Path) == "" {
		return nil, nil
	}
	return esrun.OpenStore(cfg.Store.Path, cfg.Store.SaveResponseBody)
}

func paramsFromFlags(cmd *cobra.Command) (esrun.Params, error) {
	flags := cmd.Flags()
	method, _ := flags.GetString("method")
	url, _ := flags.GetString("url")
	headers, _ := flags.GetString("headers")
	jq, _ := flags.GetString("jq")
	shell, _ := flags.GetString("shell")
	tablify, _ := flags.GetString("tablify")
	file, _ := flags.GetString("file")
	rawVars, _ := flags.GetStringArray("var")

	vars, err := parseVars(rawVars)
	if err != nil {
		return esrun.Params{}, err
	}
	return esrun.Params{
		Method:     method,
		URL:        url,
		Headers:    headers,
		JQ:         jq,
		Shell:      shell,
		Tablify:    tablify,
		OutputFile: file,
		Vars:       vars,
	}, nil
}

func parseVars(raw []string) (esrun.Vars, error) {
	vars := make(esrun.Vars, 0, len(raw))
	for _, r := range raw {
		eq := strings.IndexByte(r, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("invalid --var %q: expected name=value", r)
		}
		vars = append(vars, script.Var{Name: strings.TrimSpace(r[:eq]), Value: r[eq+1:]})
	}
	return vars, nil
}
