package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Tasks    TasksConfig    `mapstructure:"tasks"    validate:"required"`
	Locale   LocaleConfig   `mapstructure:"locale"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// LogFile enables a rotating JSON log file next to stdout when set.
	LogFile string `mapstructure:"log_file"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"required,min=4,max=31"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,min=1,max=44640"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,min=1,max=525600"`
}

// TasksConfig holds the business rules applied to tasks.
type TasksConfig struct {
	// InProgressLimit is the number of tasks a user may have in progress at once.
	InProgressLimit      int `mapstructure:"in_progress_limit"      validate:"required,min=1"`
	TrashRetentionDays   int `mapstructure:"trash_retention_days"   validate:"required,min=1"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes" validate:"required,min=1"`
}

// LocaleConfig selects the language used when a request does not ask for one.
type LocaleConfig struct {
	Default string `mapstructure:"default" validate:"required,oneof=ja en"`
}
