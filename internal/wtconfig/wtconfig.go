// Package wtconfig locates and parses .git-workers.toml per the
// precedence chain in spec §4.4, and implements the repository-URL
// hook gate.
package wtconfig

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file's fixed name.
const FileName = ".git-workers.toml"

// HookEvent identifies one of the three lifecycle points hooks run at.
type HookEvent string

const (
	PostCreate HookEvent = "post-create"
	PreRemove  HookEvent = "pre-remove"
	PostSwitch HookEvent = "post-switch"
)

// Config mirrors the .git-workers.toml schema documented in spec §6.
// Unknown keys are silently ignored by toml.Decode (they have no
// matching field), and a missing file or section yields the
// corresponding zero value, satisfying spec §4.4's "permissive TOML
// reader" requirement.
type Config struct {
	Repository struct {
		URL string `toml:"url"`
	} `toml:"repository"`
	Hooks struct {
		PostCreate []string `toml:"post-create"`
		PreRemove  []string `toml:"pre-remove"`
		PostSwitch []string `toml:"post-switch"`
	} `toml:"hooks"`
	Files struct {
		Copy   []string `toml:"copy"`
		Source string   `toml:"source"`
	} `toml:"files"`
}

// HooksFor returns the ordered command list configured for event.
func (c Config) HooksFor(event HookEvent) []string {
	switch event {
	case PostCreate:
		return c.Hooks.PostCreate
	case PreRemove:
		return c.Hooks.PreRemove
	case PostSwitch:
		return c.Hooks.PostSwitch
	default:
		return nil
	}
}

// Load reads and parses the config file at path. A non-existent file
// is not an error: it yields the zero-value Config.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DiscoverOptions carries the repository facts Discover needs to
// apply spec §4.4's bare/non-bare precedence chains without importing
// the git engine package (avoiding an import cycle: the engine may
// itself want config-derived defaults in the future).
type DiscoverOptions struct {
	CWD            string
	Bare           bool
	RepoName       string   // basename of the main repository; used for the "CWD's parent" rule
	MainWorktree   string   // main worktree root (non-bare) or "" (bare)
	DefaultBranch  string   // used for "<CWD>/<default-branch>/" (bare)
	WorktreeRoots  []string // existing worktrees' paths, used to auto-detect a common parent (bare)
}

// Discover returns the path of the first existing candidate in the
// precedence chain of spec §4.4, or ok=false if none exists.
func Discover(opts DiscoverOptions) (path string, ok bool) {
	for _, candidate := range candidates(opts) {
		full := filepath.Join(candidate, FileName)
		if _, err := os.Stat(full); err == nil {
			return full, true
		}
	}
	return "", false
}

func candidates(opts DiscoverOptions) []string {
	if !opts.Bare {
		var list []string
		list = append(list, opts.CWD)
		parent := filepath.Dir(opts.CWD)
		if opts.RepoName != "" && filepath.Base(parent) == opts.RepoName {
			list = append(list, parent)
		}
		if opts.MainWorktree != "" {
			list = append(list, opts.MainWorktree)
		}
		return list
	}

	var list []string
	list = append(list, opts.CWD)
	if opts.DefaultBranch != "" {
		list = append(list, filepath.Join(opts.CWD, opts.DefaultBranch))
	}
	if common := commonParent(opts.WorktreeRoots); common != "" {
		list = append(list, common)
	}
	list = append(list, filepath.Join(opts.CWD, "branch"))
	list = append(list, filepath.Join(opts.CWD, "worktrees"))
	return list
}

// commonParent returns the deepest directory shared by every path in
// paths, used to auto-detect a bare repository's worktree-pattern
// root (spec §4.4).
func commonParent(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	common := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		common = sharedPrefix(common, filepath.Dir(p))
		if common == "" || common == string(filepath.Separator) {
			return ""
		}
	}
	return common
}

func sharedPrefix(a, b string) string {
	as := splitPath(a)
	bs := splitPath(b)
	var out []string
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			break
		}
		out = append(out, as[i])
	}
	if len(out) == 0 {
		return ""
	}
	joined := filepath.Join(out...)
	if filepath.IsAbs(a) {
		joined = string(filepath.Separator) + joined
	}
	return joined
}

func splitPath(p string) []string {
	p = filepath.Clean(p)
	var parts []string
	for p != "." && p != string(filepath.Separator) && p != "" {
		dir, base := filepath.Split(filepath.Clean(p))
		parts = append([]string{base}, parts...)
		p = filepath.Clean(dir)
	}
	return parts
}

// GateHooks implements the §4.4 repository-URL gate: when the config
// names a repository.url, hook execution is disabled (not the
// operation itself) if it disagrees with the discovered origin URL.
func GateHooks(cfg Config, originURL string) bool {
	if cfg.Repository.URL == "" {
		return true
	}
	return cfg.Repository.URL == originURL
}
