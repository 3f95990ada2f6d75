// Package config loads and validates the interpreter's configuration.
package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name looked up inside the config directory.
const ConfigurationName = "config.yaml"

type Configuration struct {
	// Motd is printed once at the start of an interactive session.
	Motd string `json:"motd"`

	// Prompt is shown before each interactive line.
	Prompt string `json:"prompt" validate:"required"`

	// MaxJobs bounds the background job table.
	MaxJobs int `json:"max_jobs" validate:"gte=1"`

	// LogPath is the JSON-lines event log, appended to. Empty disables it.
	LogPath string `json:"log_path"`

	// HistoryPath is the readline history file. Empty keeps history in
	// memory only.
	HistoryPath string `json:"history_path"`

	// Dir is the directory the configuration was loaded from. Set by Load,
	// never by the file.
	Dir string `json:"-"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}
