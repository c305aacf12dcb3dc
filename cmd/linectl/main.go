package main

import (
	"fmt"
	"os"

	"golang-connect-line/configs"
	lineAdapter "golang-connect-line/internal/adapters/output/line"
	"golang-connect-line/internal/adapters/output/transport"
	"golang-connect-line/internal/ports/output"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgDir       string
	cfgEnv       string
	outputFormat string
	version      = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "linectl",
	Short: "linectl - LINE Messaging API client",
	Long:  `linectl sends messages and manages audiences and rich menus of a LINE official account.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := newPrinter(outputFormat, cmd.OutOrStdout()); err != nil {
			return err
		}
		logrus.SetLevel(logrus.WarnLevel)
		return nil
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "linectl version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgDir, "config", "c", "./configs", "directory holding config.yaml")
	rootCmd.PersistentFlags().StringVar(&cfgEnv, "env", "", "environment whose .env file is loaded")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "output format (table, json, yaml)")

	rootCmd.AddCommand(versionCmd)
}

// newLineClient builds the LINE client from the line section of the config
func newLineClient() (output.LineClient, error) {
	configs.InitViper(cfgDir, cfgEnv)
	line := configs.GetViper().Line

	client, err := lineAdapter.NewLineClientAdapter(
		transport.NewHTTPTransportAdapter(line.TimeoutSeconds),
		line.BaseURL,
		line.ChannelToken,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE client: %w", err)
	}
	return client, nil
}

func printerFor(cmd *cobra.Command) *printer {
	p, _ := newPrinter(outputFormat, cmd.OutOrStdout())
	return p
}
