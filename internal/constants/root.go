package constants

const (
	AppName           = "breakfree"
	Version           = "v0.1.0"
	DefaultConfigDir  = "~/.config/breakfree"
	DefaultConfigPath = "~/.config/breakfree/config.yaml"
	DefaultStorePath  = "~/.config/breakfree/breakfree.db"
	DefaultTimezone   = "Local" // Use system local timezone by default

	// RecordSlot is the single named slot the user record lives in.
	RecordSlot = "breakfreeplus_userdata"

	// DateFormat is the calendar date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Keyring users
	KeyringUserDatabase  = "database-connection"
	KeyringUserGenerator = "generator-api-key"

	// Environment variables
	EnvStore        = "BREAKFREE_STORE"
	EnvTimezone     = "BREAKFREE_TIMEZONE"
	EnvAPIKey       = "BREAKFREE_API_KEY"
	EnvLegacyAPIKey = "API_KEY"
	EnvDBConnection = "BREAKFREE_DB_CONNECTION"
	EnvTestPostgres = "BREAKFREE_TEST_POSTGRES"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "breakfree-"
	BackupFileSuffix = ".json"

	// WisdomsPerReflection is how many wisdoms are viewed before a reflection question is asked.
	WisdomsPerReflection = 3

	// WeekViewDays is the length of the habit week view.
	WeekViewDays = 7
)
