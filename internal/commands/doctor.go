package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mintforge/mintforge/exec"
	"github.com/mintforge/mintforge/internal/prereq"
	"github.com/mintforge/mintforge/output"
)

// DoctorCmd creates and returns the 'doctor' command for checking prerequisites
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are installed",
		Run: func(cmd *cobra.Command, args []string) {
			executor := exec.NewExecutor(nil)
			checks := prereq.CheckAll(cmd.Context(), executor, prereq.DefaultTools())

			healthy := true
			for _, check := range checks {
				switch {
				case check.OK:
					output.Success(fmt.Sprintf("%s %s", check.Tool.Name, check.Version))
				case !check.Installed:
					healthy = false
					output.Error(fmt.Sprintf("%s not found (%s)", check.Tool.Name, check.Tool.Reason))
				default:
					healthy = false
					output.Error(fmt.Sprintf("%s %s is below minimum %s",
						check.Tool.Name, check.Version, check.Tool.MinVersion))
				}
			}

			if !healthy {
				os.Exit(1)
			}
		},
	}
}
