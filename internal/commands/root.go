package commands

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mintforge/mintforge"
	"github.com/mintforge/mintforge/output"
)

// RootCmd creates and returns the root command for the mintforge CLI
func RootCmd() *cobra.Command {
	var verbose bool
	var logFile string

	cmd := &cobra.Command{
		Use:   "mintforge",
		Short: "Scaffold web3/NFT monorepos",
		Long: `mintforge scaffolds a pnpm/Turborepo monorepo for an NFT project:
• Solidity contracts package (Hardhat, ERC-721)
• Next.js mint page and Express metadata API
• Operational scripts and workspace wiring

Scaffolding is all-or-nothing: if any step fails, everything the run
created is removed again.`,
		Version: mintforge.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(verbose)
			if logFile != "" {
				return output.SetLogFile(logFile)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			output.CloseLogFile()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Mirror all output to a JSON-lines log file")

	return cmd
}

// InExistingProject reports whether the current directory already holds a
// mintforge-scaffolded project (a readable mintforge.yml naming a project).
func InExistingProject() bool {
	data, err := os.ReadFile("mintforge.yml")
	if err != nil {
		return false
	}

	var manifest struct {
		Project string `yaml:"project"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return false
	}

	return manifest.Project != ""
}
