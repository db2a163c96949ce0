package domain

// ConfigFileName is the optional repository configuration file.
const ConfigFileName = ".taskbridge.toml"

// PathsConfig holds the conventional store locations, relative to the
// repository root.
type PathsConfig struct {
	Tasks          string `toml:"tasks"`
	Reports        string `toml:"reports"`
	Ledger         string `toml:"ledger"`
	TaskContract   string `toml:"task_contract"`
	ReportContract string `toml:"report_contract"`
}

// GitHubConfig holds GitHub-facing defaults.
type GitHubConfig struct {
	IssueLabels  []string `toml:"issue_labels"`
	BaseBranches []string `toml:"base_branches"` // tried in order for PR creation
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Config is the merged application configuration.
type Config struct {
	Paths       PathsConfig  `toml:"paths"`
	GitHub      GitHubConfig `toml:"github"`
	Log         LogConfig    `toml:"log"`
	SecretsFile string       `toml:"secrets_file"`
}

// NewDefaultConfig returns the built-in defaults, matching the conventional
// .agent layout.
func NewDefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Tasks:          ".agent/tasks",
			Reports:        ".agent/reports",
			Ledger:         ".agent/ledger.yaml",
			TaskContract:   ".agent/contracts/task.contract.yaml",
			ReportContract: ".agent/contracts/report.contract.yaml",
		},
		GitHub: GitHubConfig{
			IssueLabels:  []string{"agent-task", "automation"},
			BaseBranches: []string{"main", "master"},
		},
		Log:         LogConfig{Level: "info"},
		SecretsFile: ".env.local",
	}
}
