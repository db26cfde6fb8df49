// Package config holds the user editable settings of the emulator.
package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	// ConfigurationName is the name of the configuration file within the
	// configuration directory.
	ConfigurationName = "config.yaml"
)

type Configuration struct {
	configurationDir string

	// Motd is printed when an interactive session starts.
	Motd string `json:"motd"`

	// Username is the emulated login user.
	Username string `json:"username" validate:"required"`

	// Prompt is a PS1 style prompt supporting \u, \h, \w and \$.
	Prompt string `json:"prompt"`

	Uname Uname `json:"uname"`
}

type Uname struct {
	KernelName       string `json:"kernel_name" validate:"required"`               // Kernel name e.g. "Linux".
	Nodename         string `json:"nodename" validate:"required,hostname_rfc1123"` // Hostname of the emulated machine.
	KernelRelease    string `json:"kernel_release" validate:"required"`            // OS release e.g. "4.15.0-147-generic"
	KernelVersion    string `json:"kernel_version" validate:"required"`            // OS version e.g. "#151-Ubuntu SMP Fri Jun 18 19:21:19 UTC 2021"
	HardwarePlatform string `json:"hardware_platform" validate:"required"`         // Machine name e.g. "x86_64"
	OperatingSystem  string `json:"operating_system" validate:"required"`          // e.g. "GNU/Linux"
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

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
