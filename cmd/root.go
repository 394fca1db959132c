/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wasabeef/git-workers/version"
)

var initShell string

var rootCmd = &cobra.Command{
	Use:   "git-workers",
	Short: "An interactive menu for managing Git worktrees",
	Long: `git-workers opens an interactive menu for managing Git worktrees:
list, create, switch, rename, delete (single or batch), cleanup by
age, and run lifecycle hooks configured in .git-workers.toml.

Run with no arguments inside any Git repository (bare or not) to open
the menu.

Shell Integration:
  Add the following to your shell config so "switch" can change your
  shell's working directory:

  # bash (~/.bashrc)
  eval "$(git-workers --init bash)"

  # zsh (~/.zshrc)
  eval "$(git-workers --init zsh)"

  # fish (~/.config/fish/config.fish)
  git-workers --init fish | source

  # powershell ($PROFILE)
  Invoke-Expression (git-workers --init powershell | Out-String)`,
	RunE:         runRoot,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Version:      version.Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVar(&initShell, "init", "", "Output shell initialization script (bash, zsh, fish, powershell)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if initShell != "" {
		return runInit(initShell)
	}
	return runMenu(cmd.Context())
}
