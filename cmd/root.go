package cmd

import (
	logger "github.com/PolarWolf314/totara/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	rootCmd = &cobra.Command{
		Use:   "totara",
		Short: "Totara - encrypted JSON secrets you can commit",
		Long: `Totara manages JSON documents whose secret values are encrypted with
public-key authenticated encryption. An encrypted document is safe to
check into version control; only holders of the matching private key
can read the secrets back.

Usage:
  totara keygen                 Generate a keypair
  totara encrypt [file]         Encrypt a document's plain values in place
  totara decrypt [file]         Decrypt a document to stdout or a file

Run 'totara help <command>' for details on a specific command.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing totara with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteWithArgs runs the root command with the given arguments instead
// of os.Args. Integration tests use it to drive commands directly.
func ExecuteWithArgs(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// ResetGlobalState restores every command flag to its default so
// integration tests can run commands back to back.
func ResetGlobalState() {
	verbose = false
	debug = false
	keygenWrite = false
	encryptEnvironment = ""
	encryptDryRun = false
	decryptEnvironment = ""
	decryptOutput = ""

	for _, c := range []*cobra.Command{rootCmd, keygenCmd, encryptCmd, decryptCmd} {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}
