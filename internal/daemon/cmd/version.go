package cmd

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/deskpet-io/deskpet/internal/buildinfo"
	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/hostapi"
)

var (
	hostBrand = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	hostLabel = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
)

// versionField is one labelled line of `deskpetd version`.
type versionField struct {
	label string
	value string
}

// versionFields describes this build and the host it would start with the
// current flags.
func versionFields() []versionField {
	daemonFile, err := config.GlobalDaemonFile()
	if err != nil {
		daemonFile = "unknown"
	}
	web := "off"
	if webPort == 0 {
		web = "dynamic port"
	} else if webPort > 0 {
		web = fmt.Sprintf("port %d", webPort)
	}
	return []versionField{
		{"Commit", buildinfo.CommitHash},
		{"Built", buildinfo.BuildDate},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH + " " + runtime.Version()},
		{"Services", hostapi.PositionServiceName + ", " + hostapi.DaemonServiceName},
		{"Codec", "application/grpc+" + hostapi.CodecName},
		{"Screen", screenFlag},
		{"Window", sizeFlag},
		{"Web bridge", web},
		{"Daemon file", daemonFile},
	}
}

var daemonVersionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version and host information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("  %s %s\n", hostBrand.Render("deskpetd"), buildinfo.Short())
		for _, f := range versionFields() {
			fmt.Printf("    %s %s\n", hostLabel.Render(fmt.Sprintf("%-12s", f.label)), f.value)
		}
	},
}

func init() {
	rootCmd.AddCommand(daemonVersionCmd)
}
