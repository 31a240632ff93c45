package models

// MConfig Structure
type MConfig struct {
	Name         string          `yaml:"name" default:"index-observer" validate:"required"`
	Host         string          `yaml:"host" default:"127.0.0.1" validate:"required"`
	Port         int             `yaml:"port" default:"8080" validate:"min=1025,max=65535"`
	LogLevel     string          `yaml:"log_level" default:"INFO" validate:"oneof=DEBUG INFO WARNING ERROR"`
	LogFormat    string          `yaml:"log_format" default:"console" validate:"oneof=console json"`
	DefaultRange string          `yaml:"default_range" default:"1M"`
	Dataset      MDatasetConfig  `yaml:"dataset"`
	Anchor       MAnchorConfig   `yaml:"anchor"`
	Cache        MCacheConfig    `yaml:"cache"`
	Analysis     MAnalysisConfig `yaml:"analysis"`
}

type MDatasetConfig struct {
	Path           string `yaml:"path" default:"data/dump.csv" validate:"required"` // file path or http(s) URL
	ReloadCron     string `yaml:"reload_cron"`                                      // empty disables scheduled reloads
	LoadRetries    int    `yaml:"load_retries" default:"3" validate:"min=1"`
	RequestTimeout string `yaml:"request_timeout" default:"30s"`
}

type MAnchorConfig struct {
	Date          string `yaml:"date" default:"2024-03-23" validate:"required"`
	SnapToSession bool   `yaml:"snap_to_session"`
	MIC           string `yaml:"mic" default:"xnys"`
}

type MCacheConfig struct {
	Enabled    bool  `yaml:"enabled" default:"true"`
	MaxEntries int64 `yaml:"max_entries" default:"1024" validate:"min=1"`
}

type MAnalysisConfig struct {
	Enabled       bool   `yaml:"enabled"`
	APIKey        string `yaml:"api_key"`
	Model         string `yaml:"model" default:"gemini-1.5-flash"`
	Timeout       string `yaml:"timeout" default:"30s"`
	HistoryPoints int    `yaml:"history_points" default:"30" validate:"min=1"`
}
