package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/totara/internal/configs"
	kerrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/utils"
	"github.com/PolarWolf314/totara/internal/workflows"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	decryptEnvironment string
	decryptOutput      string
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptEnvironment, "environment", "e", "", "environment name used to compose the document path")
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "write the decrypted document to a file instead of stdout")
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file]",
	Short: "Decrypts a document using your private key",
	Long: `Decrypts every encrypted value in a document. The private key matching
the document's _public_key is taken from the TOTARA_PRIVATE_KEY
environment variable if set, otherwise from the keys directory.

The decrypted document goes to stdout by default; it is never written
back over the encrypted file unless you ask with --output.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configs.EnsureConfig(os.LookupEnv)
		if err != nil {
			printError("Failed to load configuration", err)
			return
		}

		opts := workflows.DecryptOptions{
			Environment: decryptEnvironment,
			Settings:    config.Settings,
			Lookup:      os.LookupEnv,
		}
		if len(args) == 1 {
			opts.FilePath = args[0]
		}

		spinner, cleanup := startSpinner("Decrypting document...")

		result, err := workflows.Decrypt(cmd.Context(), opts)
		if err != nil {
			message := color.RedString("✗") + " Failed to decrypt " +
				color.YellowString(displayPath(opts)) + "\n" +
				color.RedString("Error: ") + err.Error() + "\n"
			if errors.Is(err, kerrors.ErrKeyResolutionFailed) {
				message += "Private keys are looked up in:" + utils.FormatPaths([]string{
					"$" + config.Settings.PrivateKeyVariable,
					config.Settings.Keydir,
				})
			}
			spinner.FinalMSG = message
			cleanup()
			return
		}

		if decryptOutput != "" {
			if err := os.WriteFile(decryptOutput, result.Document, 0600); err != nil {
				spinner.FinalMSG = color.RedString("✗") + " Failed to write " +
					color.YellowString(decryptOutput) + "\n" +
					color.RedString("Error: ") + err.Error() + "\n"
				cleanup()
				return
			}
			spinner.FinalMSG = color.GreenString("✓") +
				fmt.Sprintf(" Decrypted %d value(s) into %s\n", result.Values, color.YellowString(decryptOutput))
			cleanup()
			return
		}

		// Stop the spinner before the raw document hits stdout.
		cleanup()
		fmt.Print(string(result.Document))
	},
}

func displayPath(opts workflows.DecryptOptions) string {
	if opts.FilePath != "" {
		return opts.FilePath
	}
	return opts.Settings.DocumentPath(opts.Environment)
}
