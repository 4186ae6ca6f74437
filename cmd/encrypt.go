package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/totara/internal/configs"
	"github.com/PolarWolf314/totara/internal/workflows"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	encryptEnvironment string
	encryptDryRun      bool
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptEnvironment, "environment", "e", "", "environment name used to compose the document path")
	encryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "encrypt without writing the result back")
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [file]",
	Short: "Encrypts a document's plain string values in place",
	Long: `Encrypts every plain string value in a document under its _public_key.
Values already encrypted are left alone, as are keys beginning with an
underscore, so the command is safe to run after every edit.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configs.EnsureConfig(os.LookupEnv)
		if err != nil {
			printError("Failed to load configuration", err)
			return
		}

		opts := workflows.EncryptOptions{
			Environment: encryptEnvironment,
			DryRun:      encryptDryRun,
			Settings:    config.Settings,
		}
		if len(args) == 1 {
			opts.FilePath = args[0]
		}

		spinner, cleanup := startSpinner("Encrypting document...")
		defer cleanup()

		result, err := workflows.Encrypt(cmd.Context(), opts)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to encrypt the document\n" +
				color.RedString("Error: ") + err.Error() + "\n"
			return
		}

		if result.DryRun {
			spinner.FinalMSG = color.YellowString("[dry-run]") +
				fmt.Sprintf(" Would encrypt %d value(s) in %s\n", result.Values, color.YellowString(result.Path))
			return
		}

		spinner.FinalMSG = color.GreenString("✓") +
			fmt.Sprintf(" Encrypted %d value(s) in %s\n", result.Values, color.YellowString(result.Path)) +
			color.CyanString("→") + " The document is now safe to commit\n"
	},
}
