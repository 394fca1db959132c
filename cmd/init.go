package cmd

import (
	"fmt"
	"io"
	"os"
)

// Bash hook. Sets GW_SWITCH_FILE to a per-PID temp path, runs the
// binary, then reads/removes/cds to whatever it wrote there.
const bashWrapper = `
# git-workers shell integration
gw() {
    local switch_file
    switch_file="$(mktemp "${TMPDIR:-/tmp}/gw_switch_$$.XXXXXX")"
    rm -f "$switch_file"
    GW_SWITCH_FILE="$switch_file" command git-workers "$@"
    local exit_code=$?
    if [[ -f "$switch_file" ]]; then
        local target
        target=$(cat "$switch_file")
        rm -f "$switch_file"
        if [[ -d "$target" ]]; then
            cd "$target"
        fi
    fi
    return $exit_code
}
`

// Zsh hook, identical shape to the bash one (same POSIX-ish builtins).
const zshWrapper = `
# git-workers shell integration
gw() {
    local switch_file
    switch_file="$(mktemp "${TMPDIR:-/tmp}/gw_switch_$$.XXXXXX")"
    rm -f "$switch_file"
    GW_SWITCH_FILE="$switch_file" command git-workers "$@"
    local exit_code=$?
    if [[ -f "$switch_file" ]]; then
        local target
        target=$(cat "$switch_file")
        rm -f "$switch_file"
        if [[ -d "$target" ]]; then
            cd "$target"
        fi
    fi
    return $exit_code
}
`

const fishWrapper = `
# git-workers shell integration
function gw --wraps git-workers
    set -l switch_file (mktemp "/tmp/gw_switch_"(echo %self)".XXXXXX")
    rm -f "$switch_file"
    env GW_SWITCH_FILE="$switch_file" command git-workers $argv
    set -l exit_code $status
    if test -f "$switch_file"
        set -l target (cat "$switch_file")
        rm -f "$switch_file"
        if test -d "$target"
            cd "$target"
        end
    end
    return $exit_code
end
`

const powershellWrapper = "" +
	"# git-workers shell integration\n" +
	"function gw {\n" +
	"    $switchFile = [System.IO.Path]::GetTempFileName()\n" +
	"    Remove-Item $switchFile -ErrorAction SilentlyContinue\n" +
	"    $env:GW_SWITCH_FILE = $switchFile\n" +
	"    & git-workers.exe @args\n" +
	"    $exitCode = $LASTEXITCODE\n" +
	"    Remove-Item Env:\\GW_SWITCH_FILE\n" +
	"    if (Test-Path $switchFile) {\n" +
	"        $target = Get-Content $switchFile -Raw\n" +
	"        Remove-Item $switchFile -ErrorAction SilentlyContinue\n" +
	"        if (Test-Path $target -PathType Container) {\n" +
	"            Set-Location $target\n" +
	"        }\n" +
	"    }\n" +
	"    return $exitCode\n" +
	"}\n"

// runInit writes the shell snippet for shell to stdout. The wrapper
// function is named gw rather than overriding git itself: spec §1
// scopes the wrapper script out, and a menu-driven binary with no
// subcommands has nothing for a git() override to intercept.
func runInit(shell string) error {
	var body string
	switch shell {
	case "bash":
		body = bashWrapper
	case "zsh":
		body = zshWrapper
	case "fish":
		body = fishWrapper
	case "powershell":
		body = powershellWrapper
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", shell)
	}
	_, err := io.WriteString(os.Stdout, body)
	return err
}
