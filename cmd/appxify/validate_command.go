package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"appxify/internal/config"
	"appxify/internal/converr"
	"appxify/internal/descriptor"
	"appxify/internal/fileutil"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var nameFlag string
	var publisherFlag string
	var publisherDisplayFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "validate <manifest.json>",
		Short: "Check a manifest without writing any output",
		Long: `Validate runs the full conversion pipeline in dry-run mode. Icon slots
are matched and access rules derived, but no scaled images or descriptor
files are written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			manifestPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if !fileutil.FileExists(manifestPath) {
				return converr.ManifestNotFound(manifestPath)
			}
			raw, err := os.ReadFile(manifestPath)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}

			asm := descriptor.New(filepath.Dir(manifestPath),
				descriptor.WithLogger(logger),
				descriptor.WithToolVersion(version),
				descriptor.WithDryRun())

			result, err := asm.Convert(raw, ctx.identity(nameFlag, publisherFlag, publisherDisplayFlag))
			if err != nil {
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, newConversionReport(result, "", ""))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Manifest valid (%s format)\n", result.Format)
			fmt.Fprintln(out, renderAssetTable(result))
			fmt.Fprintln(out, renderRuleTable(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Package identity name")
	cmd.Flags().StringVar(&publisherFlag, "publisher", "", "Package publisher identity string")
	cmd.Flags().StringVar(&publisherDisplayFlag, "publisher-display", "", "Publisher display name")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit a machine-readable validation report")

	return cmd
}
