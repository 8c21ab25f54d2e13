package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "ggraph",
	Short:         "draw line, bar, pie, donut and gauge charts as svg",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./ggraph.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Duration("debounce", 0, "quiet window applied to resize notifications")

	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("resize.debounce", flags.Lookup("debounce"))

	rootCmd.AddCommand(svgCmd, renderCmd, watchCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("ggraph")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("GGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log.level", "info")
	viper.SetDefault("resize.debounce", 0)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "reading config %s: %v\n", viper.ConfigFileUsed(), err)
			os.Exit(1)
		}
	}
}

func newLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(viper.GetString("log.level"))
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if level.Level() == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func debounce() time.Duration {
	return viper.GetDuration("resize.debounce")
}
