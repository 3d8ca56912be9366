package config

import "time"

// SourceConfig describes where EiBi data is read from
type SourceConfig struct {
	File       string `yaml:"file"` // empty: the current season's file name
	Encoding   string `yaml:"encoding" validate:"oneof=auto utf-8 latin1 windows-1252"`
	SitesFile  string `yaml:"sitesFile"`
	SkipOneDay *bool  `yaml:"skipOneDay"`
}

// SkipsOneDay reports whether one-day entries are dropped; defaults to true.
func (c SourceConfig) SkipsOneDay() bool {
	return c.SkipOneDay == nil || *c.SkipOneDay
}

// FetchConfig contains the download settings for the online mode
type FetchConfig struct {
	BaseURL      string `yaml:"baseURL" validate:"omitempty,url"`
	Attempts     int    `yaml:"attempts" validate:"gte=0,lte=20"`
	TimeoutMS    int    `yaml:"timeoutMS" validate:"gte=0"`
	RetryDelayMS int    `yaml:"retryDelayMS" validate:"gte=0"`
}

// OutputConfig contains output file and label settings
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	CSVFile     string `yaml:"csvFile" validate:"required"`
	JSONFile    string `yaml:"jsonFile" validate:"required"`
	JSONLabel   string `yaml:"jsonLabel"` // empty: "EiBi <season>"
	Mode        string `yaml:"mode" validate:"required"`
	UnknownDays string `yaml:"unknownDays" validate:"oneof=keep skip"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// PublishConfig enables uploading the produced files to S3
type PublishConfig struct {
	Bucket  string `yaml:"bucket"`
	Region  string `yaml:"region" validate:"required_with=Bucket"`
	Prefix  string `yaml:"prefix"`
	Profile string `yaml:"profile"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Source  SourceConfig  `yaml:"source"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
	Publish PublishConfig `yaml:"publish"`
}

// Timeout returns the per-request download timeout.
func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// RetryDelay returns the pause between download attempts.
func (c FetchConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// Enabled reports whether publishing is configured.
func (c PublishConfig) Enabled() bool {
	return c.Bucket != ""
}
