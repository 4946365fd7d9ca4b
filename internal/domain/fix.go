package domain

// Default traversal settings shared by scan, heal and watch.
const (
	DefaultMaxDepth = 10
)

// DefaultExtensions are the manifest file suffixes crawled when none are given.
var DefaultExtensions = []string{".yaml", ".yml"}

// HealOptions tune how an Engine writes repaired files.
type HealOptions struct {
	// Backup copies the original next to the target before it is replaced.
	Backup bool `json:"backup"`
}

// DefaultHealOptions keeps a backup of every file it rewrites.
func DefaultHealOptions() HealOptions {
	return HealOptions{Backup: true}
}
