package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default endpoints of the judges' problem catalogs
const (
	DefaultAtCoderURL         = "https://kenkoooo.com/atcoder/resources/problems.json"
	DefaultCodeforcesURL      = "https://codeforces.com/api/problemset.problems"
	DefaultLibraryCheckerRepo = "https://github.com/yosupo06/library-checker-problems"
)

// SetDefaults registers the default value of every setting
func SetDefaults(v *viper.Viper) {
	v.SetDefault("file", "data.json")
	v.SetDefault("verbose", false)
	v.SetDefault("judges", []string{"atcoder", "codeforces", "library-checker"})
	v.SetDefault("listing.strict", false)
	v.SetDefault("listing.http_timeout", 30*time.Second)
	v.SetDefault("atcoder.url", DefaultAtCoderURL)
	v.SetDefault("codeforces.url", DefaultCodeforcesURL)
	v.SetDefault("library_checker.repo", DefaultLibraryCheckerRepo)
	v.SetDefault("engine.skip_probability", 0.95)
	v.SetDefault("generator.command", "oj-prepare")
	v.SetDefault("generator.timeout", 5*time.Minute)
	v.SetDefault("generator.interval", time.Duration(0))
	v.SetDefault("schedule.cron", "@daily")
}

// GetSnapshotFile returns the path of the snapshot JSON file
func GetSnapshotFile() string {
	return viper.GetString("file")
}

// GetVerbose reports whether debug logging is enabled
func GetVerbose() bool {
	return viper.GetBool("verbose")
}

// GetJudges returns the names of the judges to list
func GetJudges() []string {
	return viper.GetStringSlice("judges")
}

// GetStrictListing reports whether a single judge's listing failure aborts the run
func GetStrictListing() bool {
	return viper.GetBool("listing.strict")
}

// GetHTTPTimeout returns the timeout of one catalog request
func GetHTTPTimeout() time.Duration {
	return viper.GetDuration("listing.http_timeout")
}

// GetAtCoderURL returns the AtCoder problem catalog endpoint
func GetAtCoderURL() string {
	return viper.GetString("atcoder.url")
}

// GetCodeforcesURL returns the Codeforces problemset API endpoint
func GetCodeforcesURL() string {
	return viper.GetString("codeforces.url")
}

// GetLibraryCheckerRepo returns the repository cloned to list Library-Checker problems
func GetLibraryCheckerRepo() string {
	return viper.GetString("library_checker.repo")
}

// GetSkipProbability returns the probability of leaving a known problem untouched
func GetSkipProbability() float64 {
	return viper.GetFloat64("engine.skip_probability")
}

// GetGeneratorCommand returns the templating tool executable
func GetGeneratorCommand() string {
	return viper.GetString("generator.command")
}

// GetGeneratorTimeout bounds one templating tool invocation
func GetGeneratorTimeout() time.Duration {
	return viper.GetDuration("generator.timeout")
}

// GetGeneratorInterval returns the minimum delay between two tool invocations
func GetGeneratorInterval() time.Duration {
	return viper.GetDuration("generator.interval")
}

// GetSchedule returns the cron spec used by the schedule command
func GetSchedule() string {
	return viper.GetString("schedule.cron")
}
