package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mintforge/mintforge/generator"
	"github.com/mintforge/mintforge/input"
	"github.com/mintforge/mintforge/internal/project"
	"github.com/mintforge/mintforge/output"
)

// NewCmd creates and returns the 'new' command for scaffolding projects
func NewCmd() *cobra.Command {
	var minimal, skipPrereqs, skipInstall, skipGit, dryRun bool
	var force, skip, diff bool
	var targetParent string

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new NFT project monorepo",
		Long: `Creates a pnpm/Turborepo monorepo with:
• contracts package (Hardhat + ERC-721 contract)
• frontend package (Next.js mint page)
• backend package (Express metadata API)
• scripts package (minting helpers)
• workspace wiring, .gitignore, .env.example

Collection defaults (symbol, supply, price, network) come from an optional
mintforge.yml in the current directory, overridable via MINTFORGE_* env vars.

Example:
  mintforge new mytoken
  mintforge new mytoken --minimal --skip-install`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			projectName := args[0]

			output.Verbose(fmt.Sprintf("Creating new project: %s", projectName))

			if InExistingProject() {
				output.Warning("Current directory already holds a mintforge project; nesting monorepos is rarely what you want")
			}

			collection, err := project.LoadDefaults()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			cfg, err := project.NewConfig(projectName, targetParent, collection)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			cfg.Minimal = minimal
			cfg.SkipPrereqs = skipPrereqs
			cfg.SkipInstall = skipInstall
			cfg.SkipGit = skipGit
			cfg.DryRun = dryRun

			if exists, nonEmpty := cfg.TargetExists(); exists && nonEmpty && !force && !dryRun {
				if !input.Confirm(fmt.Sprintf("Directory %s is not empty. Continue?", cfg.TargetDir), false) {
					output.Info("Aborted")
					os.Exit(1)
				}
			}

			resolver, err := generator.NewResolver(force, skip, diff)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			scaffolder := project.NewScaffolder(
				project.WithResolver(resolver),
				project.WithWarnFunc(output.Warning),
				project.WithVerbose(verboseFlag(cmd)),
			)
			if err := scaffolder.Scaffold(cmd.Context(), cfg); err != nil {
				output.Error(fmt.Sprintf("Scaffolding failed: %v", err))
				output.Info("The target directory was restored; see the log file for details")
				os.Exit(1)
			}

			if dryRun {
				output.Success(fmt.Sprintf("Dry run complete for: %s", projectName))
				return
			}

			output.Success(fmt.Sprintf("Created project: %s", projectName))
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("cd %s", projectName))
			if skipInstall {
				output.Step("pnpm install")
			}
			output.Step("cp .env.example .env  # fill in RPC_URL and keys")
			output.Step("pnpm compile")
		},
	}

	cmd.Flags().BoolVar(&minimal, "minimal", false, "Only contracts and scripts packages")
	cmd.Flags().BoolVar(&skipPrereqs, "skip-prereqs", false, "Skip prerequisite tool checks")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Skip pnpm install")
	cmd.Flags().BoolVar(&skipGit, "skip-git", false, "Skip git init")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be created without writing")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files without prompting")
	cmd.Flags().BoolVar(&skip, "skip", false, "Keep existing files without prompting")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a diff before deciding about existing files")
	cmd.Flags().StringVarP(&targetParent, "dir", "d", ".", "Parent directory to create the project in")

	return cmd
}
