package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexiusacademia/gomember/internal/version"
)

// Cfg holds the configuration shared by all commands. Values come from
// flags, GOMEMBER_ environment variables, a .env file or a config file.
var Cfg *viper.Viper

// Log is the logger handed to the member evaluation
var Log = logrus.StandardLogger()

var rootCmd = &cobra.Command{
	Use:   "gomember",
	Short: "Tubular Member Property Tool",
	Long: `gomember - Go Floating Member Properties

A CLI tool computing the properties of the tubular members
of floating offshore platforms: spars, columns and pontoons.

For a member described along its axis, this tool computes:
  - Section properties of the shell, bulkheads and ring stiffeners
  - Mass, center of gravity, inertia and fabrication cost
  - Ballast placement and variable ballast capacity
  - Nodes and per-interval sections for a frame model
  - Displaced volume, center of buoyancy, waterplane and added mass

Configuration can be changed with a configuration file (--config),
command-line flags, a .env file or environment variables in the
format GOMEMBER_WATER_DENSITY for the key water.density.`,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gomember v%-46s║\n", version.Version)
		fmt.Println("  ║   Go Floating Member Properties                           ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Shell, bulkhead and ring stiffener section properties")
		fmt.Println("    • Mass, inertia and fabrication cost breakdown")
		fmt.Println("    • Fixed and variable ballast")
		fmt.Println("    • Hydrostatics and added mass")
		fmt.Println("    • XLSX node tables, PDF reports and profile plots")
		fmt.Println()
		fmt.Println("  Use 'gomember --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options are the configuration keys that can also be set by flag
var options = []struct {
	key, flag  string
	defaultVal interface{}
	usage      string
}{
	{"config", "config", "", "Path to a configuration file (toml, yaml or json)"},
	{"log.level", "log-level", "info", "Logging level (debug, info, warn, error)"},
	{"water.density", "water-density", 0.0, "Water density in kg/m³, overrides the member file (0 keeps it)"},
	{"water.gravity", "gravity", 0.0, "Gravitational acceleration in m/s² (0 uses 9.80633)"},
	{"refine", "refine", -1, "Interior stations per coarse segment, overrides the member file (-1 keeps it)"},
	{"cost.labor", "labor-rate", 0.0, "Labor cost in USD/h, overrides the member file (0 keeps it)"},
	{"cost.painting", "painting-rate", 0.0, "Painting cost in USD/m², overrides the member file (0 keeps it)"},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	Cfg = viper.New()
	Cfg.SetEnvPrefix("GOMEMBER")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	for _, option := range options {
		switch v := option.defaultVal.(type) {
		case string:
			flags.String(option.flag, v, option.usage)
		case float64:
			flags.Float64(option.flag, v, option.usage)
		case int:
			flags.Int(option.flag, v, option.usage)
		default:
			panic("invalid option type")
		}
		Cfg.BindPFlag(option.key, flags.Lookup(option.flag))
	}
}

// setConfig loads a .env file and the configuration file, if there are
// any, and sets the logging level
func setConfig() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("gomember: problem reading .env file: %v", err)
		}
	}
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gomember: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("log.level"))
	if err != nil {
		return fmt.Errorf("gomember: %v", err)
	}
	Log.SetLevel(level)
	return nil
}
