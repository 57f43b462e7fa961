package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talkincode/channelhub/internal/client"
	"github.com/talkincode/channelhub/internal/dashboard"
)

const serverEnv = "CHANNELS_SERVER"

var (
	serverURL string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "channelctl",
	Short:         "Command line admin for the channel registry",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
}

func init() {
	defaultServer := os.Getenv(serverEnv)
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer, "API base url (env "+serverEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(listCmd, showCmd, addCmd, editCmd, deleteCmd, chartCmd, exportCmd)
}

// Execute executes the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = zap.L().Sync()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "error: %s (HTTP %d)\n", apiErr.Message, apiErr.Status)
		for field, msgs := range apiErr.Errors {
			for _, msg := range msgs {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
			}
		}
		return
	}
	fmt.Fprintln(os.Stderr, "error:", err)
}

func newClient() *client.Client {
	return client.New(serverURL, nil)
}

func newView() *dashboard.View {
	return dashboard.New(newClient())
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.Errorf("invalid channel id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
