package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crate-licenses/internal/app"
)

type checkOptions struct {
	Manifest     string
	Deny         []string
	Allow        []string
	Policy       string
	IncludeDev   bool
	IncludeBuild bool
	SkipOptional bool
	Workers      int
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check dependency licenses against a deny/allow policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "Cargo.toml", "Manifest file path")
	cmd.Flags().StringSliceVar(&opts.Deny, "deny", nil, "Disallowed license strings (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Allow, "allow", nil, "Allowed license strings (repeatable)")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "Policy file with deny/allow lists")
	cmd.Flags().BoolVar(&opts.IncludeDev, "dev", false, "Include dev-dependencies")
	cmd.Flags().BoolVar(&opts.IncludeBuild, "build", false, "Include build-dependencies")
	cmd.Flags().BoolVar(&opts.SkipOptional, "skip-optional", false, "Skip optional dependencies")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Max concurrent registry lookups (0 = default)")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("deny", cmd.Flags().Lookup("deny"))
	_ = viper.BindPFlag("allow", cmd.Flags().Lookup("allow"))
	_ = viper.BindPFlag("policy", cmd.Flags().Lookup("policy"))
	_ = viper.BindPFlag("dev", cmd.Flags().Lookup("dev"))
	_ = viper.BindPFlag("build", cmd.Flags().Lookup("build"))
	_ = viper.BindPFlag("skip_optional", cmd.Flags().Lookup("skip-optional"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	service := newAppService()
	result, err := service.Check(ctx, app.CheckRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Deny:         resolveStrings(cmd, opts.Deny, "deny", "deny"),
		Allow:        resolveStrings(cmd, opts.Allow, "allow", "allow"),
		PolicyPath:   resolveString(cmd, opts.Policy, "policy", "policy"),
		IncludeDev:   resolveBool(cmd, opts.IncludeDev, "dev", "dev"),
		IncludeBuild: resolveBool(cmd, opts.IncludeBuild, "build", "build"),
		SkipOptional: resolveBool(cmd, opts.SkipOptional, "skip_optional", "skip-optional"),
		Workers:      resolveInt(cmd, opts.Workers, "workers", "workers"),
	})
	if err != nil {
		// Print accumulated violations plainly on stderr; the exit code
		// mapping turns this into exit 1.
		if errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition {
			fmt.Fprintln(cmd.ErrOrStderr(), errorMessage(err))
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
		}
		return err
	}
	fmt.Printf("License check passed (%d dependencies)\n", result.ReportCount)
	return nil
}
