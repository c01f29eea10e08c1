package main

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/canadavotes/canadavotes/internal/config"
)

var configGlobal bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change saved map settings",
	Long: `Show or change the settings canadavotes starts from.

Settings live in .canadavotes.yaml in the working directory and in
~/.config/canadavotes/config.yaml. The working-directory file wins, then
CANADAVOTES_DATA_URL, then any flags. Writing a file drops its comments.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Long: `Print one setting. Party maps take the party name after a dot.

  canadavotes config get year
  canadavotes config get short_names
  canadavotes config get "party_colors.Ontario Liberal Party"`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save one setting",
	Long: `Save one setting after checking it. parties takes a comma-separated
list, year and export_concurrency a whole number.

  canadavotes config set mode advance
  canadavotes config set parties Liberal,Conservative
  canadavotes config set party_colors.Liberal "#d71920"
  canadavotes config set --global data_url https://example.org/resources/data`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every saved setting and the file it comes from",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "read only the global config")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write the global config")

	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
}

// resetConfigFlags resets config command flags for testing.
func resetConfigFlags() {
	configGlobal = false
	for _, c := range []*cobra.Command{configGetCmd, configSetCmd} {
		f := c.Flags().Lookup("global")
		_ = f.Value.Set("false")
		f.Changed = false
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key, err := config.ParseKey(args[0])
	if err != nil {
		return err
	}

	global, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	cfg := global
	if !configGlobal {
		repo, err := config.Load(".")
		if err != nil {
			return fmt.Errorf("loading repo config: %w", err)
		}
		cfg = config.Merge(global, repo)
	}

	val, err := cfg.Lookup(key)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch val.(type) {
	case []string, map[string]string:
		return yaml.NewEncoder(w).Encode(val)
	default:
		_, _ = fmt.Fprintln(w, val)
		return nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, err := config.ParseKey(args[0])
	if err != nil {
		return err
	}

	path := filepath.Join(".", config.FileName)
	if configGlobal {
		path = config.GlobalConfigPath()
	}
	doc, err := config.LoadRaw(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	if err := config.Set(doc, key, args[1]); err != nil {
		return err
	}

	// The file is only written when the whole document still validates.
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(&cfg); err != nil {
		return err
	}
	if err := config.WriteFile(path, doc); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, args[1])
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	global, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	repo, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading repo config: %w", err)
	}

	globalTag := color.CyanString("(global)")
	repoTag := color.GreenString("(repo)")
	type entry struct {
		value any
		tag   string
	}
	entries := make(map[string]entry)
	for k, v := range global.Entries() {
		entries[k] = entry{v, globalTag}
	}
	for k, v := range repo.Entries() {
		entries[k] = entry{v, repoTag}
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'canadavotes config set <key> <value>' to save a setting.")
		return nil
	}
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		e := entries[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, e.tag)
	}
	return nil
}
