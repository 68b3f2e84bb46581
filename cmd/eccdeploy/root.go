package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"eccdeploy/internal/inputs"
)

var inputUsage = map[string]string{
	inputs.AccessToken:  "Bearer token for the hosting API",
	inputs.BaseDir:      "Directory the package directory is relative to (default: CI workspace or working directory)",
	inputs.PackageDir:   "Directory whose subdirectories are the packages to deploy",
	inputs.InstanceName: "Target instance name",
	inputs.Tags:         "Release tag (default: CI tag or ref name, else latest)",
	inputs.Description:  "Free-form deployment description",
}

func newRootCommand() *cobra.Command {
	return newRootCommandWithEnvironment(nil)
}

func newRootCommandWithEnvironment(environment environmentFunc) *cobra.Command {
	var configFlag string
	var dryRun bool

	ctx := newCommandContext(&configFlag, environment)

	rootCmd := &cobra.Command{
		Use:           "eccdeploy",
		Short:         "Archive a package directory and deploy it to managed hosting",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, ctx, inputOverrides(cmd.Flags()), dryRun)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	registerInputFlags(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Write the archive but skip the upload")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func flagName(input string) string {
	return strings.ReplaceAll(input, "_", "-")
}

func registerInputFlags(fs *pflag.FlagSet) {
	for _, name := range inputs.Names {
		fs.String(flagName(name), "", inputUsage[name])
	}
}

// inputOverrides returns the input flags that were set on the command line.
func inputOverrides(fs *pflag.FlagSet) map[string]string {
	out := make(map[string]string)
	fs.Visit(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")
		if _, ok := inputUsage[name]; ok {
			out[name] = f.Value.String()
		}
	})
	return out
}
