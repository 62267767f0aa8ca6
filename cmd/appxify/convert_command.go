package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"appxify/internal/config"
	"appxify/internal/converr"
	"appxify/internal/descriptor"
	"appxify/internal/fileutil"
	"appxify/internal/identity"
	"appxify/internal/packager"
	"appxify/internal/textutil"
)

const descriptorFileName = "AppxManifest.xml"

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var nameFlag string
	var publisherFlag string
	var publisherDisplayFlag string
	var packFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "convert <manifest.json>",
		Short: "Convert a web-app manifest into a package descriptor",
		Long: `Convert reads a W3C or Chrome hosted-app manifest, resolves its icons
against the fixed descriptor slots, derives content URI access rules, and
writes ` + descriptorFileName + ` to the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
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

			root := filepath.Dir(manifestPath)
			asm := descriptor.New(root,
				descriptor.WithLogger(logger),
				descriptor.WithToolVersion(version))

			result, err := asm.Convert(raw, ctx.identity(nameFlag, publisherFlag, publisherDisplayFlag))
			if err != nil {
				return err
			}

			outputDir := textutil.FirstNonEmpty(outDir, cfg.Paths.OutputDir, root)
			outputDir, err = config.ExpandPath(outputDir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory %q: %w", outputDir, err)
			}

			descriptorPath := filepath.Join(outputDir, descriptorFileName)
			if err := os.WriteFile(descriptorPath, result.XML, 0o644); err != nil {
				return fmt.Errorf("write descriptor: %w", err)
			}

			if outputDir != root {
				if err := copyAssets(result, root, outputDir); err != nil {
					return err
				}
			}

			appxPath := ""
			if packFlag {
				appxPath, err = packOutput(cmd.Context(), cfg, result, outputDir)
				if err != nil {
					return err
				}
			}

			if jsonFlag {
				return writeJSON(cmd, newConversionReport(result, descriptorPath, appxPath))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Converted %s manifest %s\n", result.Format, manifestPath)
			fmt.Fprintln(out, renderAssetTable(result))
			fmt.Fprintln(out, renderRuleTable(result))
			fmt.Fprintf(out, "Wrote %s\n", descriptorPath)
			if appxPath != "" {
				fmt.Fprintf(out, "Packaged %s\n", appxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory for the descriptor and assets")
	cmd.Flags().StringVar(&nameFlag, "name", "", "Package identity name")
	cmd.Flags().StringVar(&publisherFlag, "publisher", "", "Package publisher identity string")
	cmd.Flags().StringVar(&publisherDisplayFlag, "publisher-display", "", "Publisher display name")
	cmd.Flags().BoolVar(&packFlag, "package", false, "Invoke the configured packaging tool on the output directory")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit a machine-readable conversion report")

	return cmd
}

// copyAssets mirrors every resolved icon into the output directory so the
// descriptor's relative references stay valid there.
func copyAssets(result *descriptor.Result, root, outputDir string) error {
	for _, resolved := range result.Assets.All() {
		src := filepath.Join(root, resolved.Path)
		dst := filepath.Join(outputDir, filepath.FromSlash(resolved.Path))
		if err := fileutil.CopyFileMode(src, dst, 0o644); err != nil {
			return fmt.Errorf("copy asset %s: %w", resolved.Path, err)
		}
	}
	return nil
}

func packOutput(parent context.Context, cfg *config.Config, result *descriptor.Result, outputDir string) (string, error) {
	displayName := textutil.FirstNonEmpty(result.Manifest.ShortName, result.Manifest.Name)
	stem := identity.Sanitize(displayName)
	if stem == "" {
		stem = "package"
	}
	appxPath := filepath.Join(filepath.Dir(outputDir), stem+".appx")

	client := packager.NewCLI(
		packager.WithBinary(cfg.Packaging.Tool),
		packager.WithExtraArgs(cfg.Packaging.ExtraArgs...))

	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Packaging.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Packaging.TimeoutSeconds)*time.Second)
		defer cancel()
	}
	if err := client.Pack(ctx, outputDir, appxPath); err != nil {
		return "", err
	}
	return appxPath, nil
}

type assetReport struct {
	Slot        string `json:"slot"`
	Size        string `json:"size"`
	Path        string `json:"path"`
	Source      string `json:"source"`
	Synthesized bool   `json:"synthesized"`
}

type ruleReport struct {
	Match     string `json:"match"`
	APIAccess string `json:"apiAccess"`
}

type conversionReport struct {
	Format     string        `json:"format"`
	StartURL   string        `json:"startUrl"`
	Language   string        `json:"language"`
	Descriptor string        `json:"descriptor"`
	Package    string        `json:"package,omitempty"`
	Assets     []assetReport `json:"assets"`
	Rules      []ruleReport  `json:"accessRules"`
}

func newConversionReport(result *descriptor.Result, descriptorPath, appxPath string) conversionReport {
	report := conversionReport{
		Format:     result.Format.String(),
		StartURL:   result.Manifest.StartURL,
		Language:   result.Manifest.EffectiveLanguage(),
		Descriptor: descriptorPath,
		Package:    appxPath,
	}
	for _, resolved := range result.Assets.All() {
		report.Assets = append(report.Assets, assetReport{
			Slot:        resolved.Slot.Name,
			Size:        fmt.Sprintf("%dx%d", resolved.Slot.Width, resolved.Slot.Height),
			Path:        resolved.Path,
			Source:      resolved.Source,
			Synthesized: resolved.Synthesized,
		})
	}
	for _, rule := range result.Rules {
		access := rule.APIAccess
		if strings.TrimSpace(access) == "" {
			access = "none"
		}
		report.Rules = append(report.Rules, ruleReport{Match: rule.URL, APIAccess: access})
	}
	return report
}
