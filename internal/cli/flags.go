package cli

import "mcra/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile      string
	Platform        string
	Version         string
	PreviewFeatures string
	ResultsDir      string
	CSVPath         string
	Suites          []string
	Strict          bool
	LogLevel        string
	MySQL           bool
	NoSnapshot      bool
	NoProgress      bool
	ExitCode        bool
	Counts          bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:      f.ConfigFile,
		Platform:        f.Platform,
		Version:         f.Version,
		PreviewFeatures: f.PreviewFeatures,
		ResultsDir:      f.ResultsDir,
		CSVPath:         f.CSVPath,
		Suites:          f.Suites,
		Strict:          f.Strict,
		LogLevel:        f.LogLevel,
		MySQL:           f.MySQL,
		NoSnapshot:      f.NoSnapshot,
		NoProgress:      f.NoProgress,
		ExitCode:        f.ExitCode,
		Counts:          f.Counts,
	}
}
