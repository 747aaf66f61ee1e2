package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crate-licenses/internal/app"
	"crate-licenses/internal/types"
)

type generateOptions struct {
	Manifest     string
	Format       string
	IncludeDev   bool
	IncludeBuild bool
	SkipOptional bool
	OutputDir    string
	Workers      int
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a license report (Markdown or JSON)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "Cargo.toml", "Manifest file path")
	cmd.Flags().StringVar(&opts.Format, "format", "md", "Output format (md or json)")
	cmd.Flags().BoolVar(&opts.IncludeDev, "dev", false, "Include dev-dependencies")
	cmd.Flags().BoolVar(&opts.IncludeBuild, "build", false, "Include build-dependencies")
	cmd.Flags().BoolVar(&opts.SkipOptional, "skip-optional", false, "Skip optional dependencies")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", ".", "Report output directory")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Max concurrent registry lookups (0 = default)")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("dev", cmd.Flags().Lookup("dev"))
	_ = viper.BindPFlag("build", cmd.Flags().Lookup("build"))
	_ = viper.BindPFlag("skip_optional", cmd.Flags().Lookup("skip-optional"))
	_ = viper.BindPFlag("output_dir", cmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	service := newAppService()
	result, err := service.Generate(ctx, app.GenerateRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Format:       types.OutputFormat(resolveString(cmd, opts.Format, "format", "format")),
		IncludeDev:   resolveBool(cmd, opts.IncludeDev, "dev", "dev"),
		IncludeBuild: resolveBool(cmd, opts.IncludeBuild, "build", "build"),
		SkipOptional: resolveBool(cmd, opts.SkipOptional, "skip_optional", "skip-optional"),
		OutputDir:    resolveString(cmd, opts.OutputDir, "output_dir", "output-dir"),
		Workers:      resolveInt(cmd, opts.Workers, "workers", "workers"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Generated %s (%d dependencies)\n", result.ReportPath, result.ReportCount)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
