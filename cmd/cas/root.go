package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cas",
	Short: "CAS backend - LLM-backed planning, coaching and robotics skill mapping",
	Long: `cas forwards planning, coaching and accessibility-robotics requests to an
OpenAI-compatible chat completion endpoint and returns fixed-shape JSON.

Configuration comes from a YAML file (--config, CAS_CONFIG_PATH or
./config/config.yaml) with environment overrides such as OPENAI_API_KEY,
CAS_MODEL_ID, FRONTEND_ORIGIN and PORT.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}
