package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/tourplan/internal/client/changeset"
	"github.com/iudanet/tourplan/internal/client/edit"
	"github.com/iudanet/tourplan/internal/client/sync"
)

// ApplyOutput результат команды apply
type ApplyOutput struct {
	Applied *edit.Report            `yaml:"applied"`
	Result  *sync.UploadResult      `yaml:"result,omitempty"`
	Changes []changeset.KindSummary `yaml:"changes"`
	DryRun  bool                    `yaml:"dry_run"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions, deps Deps) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <plan.yaml>",
		Short: "Apply an edit plan and upload the changes",
		Long: "Fetches the schedule, applies the edit plan to the working copy and uploads the resulting changeset.\n" +
			"Records rejected by the server are reported and stay pending for the next run.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := edit.Load(args[0])
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			logger := rootOpts.Logger(deps.Stderr)
			svc, err := rootOpts.newService(cmd, deps, logger)
			if err != nil {
				return err
			}

			if _, err := svc.Fetch(ctx); err != nil {
				return fmt.Errorf("failed to fetch schedule: %w", err)
			}

			applied, err := edit.NewApplier(logger).Apply(svc.Working(), plan)
			if err != nil {
				return fmt.Errorf("failed to apply plan: %w", err)
			}

			cs, err := svc.Changeset()
			if err != nil {
				return fmt.Errorf("failed to compute changes: %w", err)
			}

			out := &ApplyOutput{Applied: applied, Changes: cs.Summary(), DryRun: dryRun}
			if dryRun {
				return printApply(deps, rootOpts, out, cs)
			}

			result, saveErr := svc.Save(ctx)
			out.Result = result
			if err := printApply(deps, rootOpts, out, cs); err != nil {
				return errors.Join(saveErr, err)
			}
			if saveErr != nil {
				return fmt.Errorf("upload failed: %w", saveErr)
			}
			if len(result.Errors) > 0 {
				return ErrRejected
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the changes without uploading")

	return cmd
}

func printApply(deps Deps, rootOpts *RootOptions, out *ApplyOutput, cs *changeset.Changeset) error {
	if rootOpts.Format == "yaml" {
		return writeYAML(deps.IO, out)
	}

	deps.IO.Printf("Plan applied: %d added, %d updated, %d removed\n",
		out.Applied.Added, out.Applied.Updated, out.Applied.Removed)
	deps.IO.Printf("Changes: %s\n", cs.String())

	if out.DryRun {
		deps.IO.Println("Dry run, nothing uploaded")
		return nil
	}
	if out.Result == nil {
		return nil
	}

	deps.IO.Println()
	for _, kr := range out.Result.Kinds {
		status := "✓"
		if !kr.Clean() {
			status = "✗"
		}
		deps.IO.Printf("%s %-20s created %d, updated %d, destroyed %d, cascaded %d, skipped %d\n",
			status, kr.Kind, kr.Created, kr.Updated, kr.Destroyed, kr.Cascaded, kr.Skipped)
	}
	deps.IO.Printf("Uploaded cleanly: %d kinds\n", out.Result.SuccessCount)

	if len(out.Result.Errors) > 0 {
		deps.IO.Println()
		deps.IO.Println("⚠️  Rejected records:")
		for _, msg := range out.Result.Errors {
			deps.IO.Printf("  %s\n", msg)
		}
	}
	return nil
}
