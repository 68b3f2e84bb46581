package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"eccdeploy/internal/inputs"
	"eccdeploy/internal/packages"
	"eccdeploy/internal/preflight"
	"eccdeploy/internal/stage"
	"eccdeploy/internal/workspace"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate inputs and the package directory without uploading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			in := ctx.stepInputs().Override(inputOverrides(cmd.Flags()))
			resolved := workspace.ResolveContext(in, cfg.Env)

			records := []stage.Health{inputsHealth(in)}
			set, pkgHealth := packagesHealth(resolved.BaseDir, in.PackageDir)
			records = append(records, pkgHealth)
			if pkgHealth.Ready {
				records = append(records, preflight.RunAll(resolved.BaseDir, set.Root)...)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Base directory: %s\n", resolved.BaseDir)
			fmt.Fprintf(out, "Tag:            %s\n", resolved.Tag)
			fmt.Fprintf(out, "Archive:        %s\n", filepath.Join(resolved.BaseDir, cfg.Deploy.ArchiveName))
			fmt.Fprintf(out, "Endpoint:       %s\n", cfg.Deploy.Endpoint)
			fmt.Fprintln(out, healthTable(records))
			if len(set.Entries) > 0 {
				fmt.Fprintln(out, packageTable(in.PackageDir, set))
			}

			if !stage.AllReady(records) {
				return errors.New("workspace check failed")
			}
			return nil
		},
	}
	registerInputFlags(cmd.Flags())
	return cmd
}

func inputsHealth(in inputs.Inputs) stage.Health {
	if err := in.Validate(); err != nil {
		return stage.Unhealthy("Inputs", err.Error())
	}
	return stage.Healthy("Inputs", "required inputs set")
}

func packagesHealth(baseDir, packageDir string) (packages.PackageSet, stage.Health) {
	if packageDir == "" {
		return packages.PackageSet{}, stage.Unhealthy("Packages", "package_dir not set")
	}
	set, err := packages.Validate(baseDir, packageDir)
	if err != nil {
		return packages.PackageSet{}, stage.Unhealthy("Packages", err.Error())
	}
	return set, stage.Healthy("Packages", fmt.Sprintf("%d package(s) in %s", len(set.Packages()), set.Root))
}

func healthTable(records []stage.Health) string {
	rows := make([][]string, 0, len(records))
	for _, h := range records {
		status := "OK"
		if !h.Ready {
			status = "FAIL"
		}
		rows = append(rows, []string{h.Name, status, h.Detail})
	}
	return tableSpec{
		headers: []string{"Check", "Status", "Detail"},
		rows:    rows,
	}.render()
}

func packageTable(packageDir string, set packages.PackageSet) string {
	rows := make([][]string, 0, len(set.Entries))
	for _, entry := range set.Entries {
		kind := "file"
		if entry.IsDir {
			kind = "package"
		}
		rows = append(rows, []string{entry.Name, kind})
	}
	return tableSpec{
		title:   "/" + packageDir,
		headers: []string{"Entry", "Kind"},
		rows:    rows,
	}.render()
}
