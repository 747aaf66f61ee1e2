package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crate-licenses/internal/app"
)

type listOptions struct {
	Manifest     string
	IncludeDev   bool
	IncludeBuild bool
	SkipOptional bool
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List direct dependencies from the manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "Cargo.toml", "Manifest file path")
	cmd.Flags().BoolVar(&opts.IncludeDev, "dev", false, "Include dev-dependencies")
	cmd.Flags().BoolVar(&opts.IncludeBuild, "build", false, "Include build-dependencies")
	cmd.Flags().BoolVar(&opts.SkipOptional, "skip-optional", false, "Skip optional dependencies")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("dev", cmd.Flags().Lookup("dev"))
	_ = viper.BindPFlag("build", cmd.Flags().Lookup("build"))
	_ = viper.BindPFlag("skip_optional", cmd.Flags().Lookup("skip-optional"))

	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, opts listOptions) error {
	service := newAppService()
	result, err := service.List(ctx, app.ListRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		IncludeDev:   resolveBool(cmd, opts.IncludeDev, "dev", "dev"),
		IncludeBuild: resolveBool(cmd, opts.IncludeBuild, "build", "build"),
		SkipOptional: resolveBool(cmd, opts.SkipOptional, "skip_optional", "skip-optional"),
	})
	if err != nil {
		return err
	}
	for _, dep := range result.Dependencies {
		fmt.Printf("%s = %q\n", dep.Name, dep.VersionReq)
	}
	return nil
}
