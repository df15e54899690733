package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/lipgloss"

	"github.com/LiangliangNan/Vulkan-Samples/internal/plugins"
)

var (
	pluginHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	pluginNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Width(14)
	pluginDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runPlugins(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plugins", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: vkb plugins")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "List the plugins built into vkb and the hooks they subscribe to.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return 2
	}

	fmt.Fprintln(stdout, pluginHeaderStyle.Render("Plugins"))
	for _, p := range plugins.All(clock.New()) {
		hooks := make([]string, 0, len(p.Hooks()))
		for _, h := range p.Hooks() {
			hooks = append(hooks, h.String())
		}
		fmt.Fprintf(stdout, "  %s%s\n", pluginNameStyle.Render(p.Name()), p.Description())
		fmt.Fprintf(stdout, "  %s%s\n", pluginNameStyle.Render(""), pluginDimStyle.Render("hooks: "+strings.Join(hooks, ", ")))
	}
	return 0
}
