package config

// StorageConfig defines where the delivery journal is kept
type StorageConfig struct {
	// JournalPath is the SQLite file recording cycles and sent notifications.
	// Empty disables the journal.
	JournalPath string `json:"journal_path,omitempty" yaml:"journal_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		JournalPath: DefaultJournalPath,
	}
}

// Enabled reports whether the journal should be opened.
func (sc StorageConfig) Enabled() bool {
	return sc.JournalPath != ""
}
