package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/welcomescreen/pkg/guest"
	"github.com/matzehuels/welcomescreen/pkg/render/sink"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for welcomescreen.

Completions cover subcommands and the values of --backend, --backends,
--style and --type, and offer only .json and .toml files for --guest.

  $ source <(welcomescreen completion bash)
  $ welcomescreen completion zsh > "${fpath[1]}/_welcomescreen"
  $ welcomescreen completion fish | source
  PS> welcomescreen completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions attaches value completions to whichever of the
// shared flags cmd defines.
func registerCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"backend": sink.Names(),
		"style":   presetNames(),
		"type":    guestTypeNames(),
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		cobra.CheckErr(cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)))
	}

	if cmd.Flags().Lookup("backends") != nil {
		cobra.CheckErr(cmd.RegisterFlagCompletionFunc("backends", completeBackendList))
	}
	if cmd.Flags().Lookup("guest") != nil {
		cobra.CheckErr(cmd.Flags().SetAnnotation("guest", cobra.BashCompFilenameExt, []string{"json", "toml"}))
	}
}

// completeBackendList completes the next entry of a comma-separated backend
// list, skipping backends already named.
func completeBackendList(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, used := "", map[string]bool{}
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
		for _, name := range strings.Split(toComplete[:i], ",") {
			used[name] = true
		}
	}

	var out []string
	for _, name := range sink.Names() {
		if !used[name] {
			out = append(out, prefix+name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func presetNames() []string {
	names := make([]string, len(styles.Presets))
	for i, p := range styles.Presets {
		names[i] = string(p)
	}
	return names
}

func guestTypeNames() []string {
	names := make([]string, len(guest.Types))
	for i, t := range guest.Types {
		names[i] = string(t)
	}
	return names
}
