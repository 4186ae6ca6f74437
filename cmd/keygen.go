package cmd

import (
	"os"

	"github.com/PolarWolf314/totara/internal/configs"
	"github.com/PolarWolf314/totara/internal/workflows"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var keygenWrite bool

func init() {
	keygenCmd.Flags().BoolVarP(&keygenWrite, "write", "w", false, "store the private key in the keys directory")
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generates a new keypair for encrypting documents",
	Long: `Generates a fresh keypair. The public key goes into a document's
_public_key field; the private key either prints to stdout or, with
--write, is stored in the keys directory under the public key's name.`,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configs.EnsureConfig(os.LookupEnv)
		if err != nil {
			printError("Failed to load configuration", err)
			return
		}

		spinner, cleanup := startSpinner("Generating keypair...")
		defer cleanup()

		result, err := workflows.Keygen(cmd.Context(), workflows.KeygenOptions{
			Settings: config.Settings,
			Write:    keygenWrite,
		})
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to generate keypair\n" +
				color.RedString("Error: ") + err.Error() + "\n"
			return
		}

		message := color.GreenString("✓") + " Keypair generated\n" +
			"Public key:  " + result.PublicKey + "\n"
		if result.KeyPath != "" {
			message += "Private key: written to " + color.YellowString(result.KeyPath) + "\n"
		} else {
			message += "Private key: " + result.PrivateKey + "\n" +
				color.CyanString("→") + " Keep the private key out of version control\n"
		}
		spinner.FinalMSG = message
	},
}
