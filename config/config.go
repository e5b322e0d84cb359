// Package config loads the run configuration from viper (flags, PLANTPIPE_*
// environment variables and .plantpipe.yaml) and validates it.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the validated run configuration shared by every input.
type Config struct {
	Kind      string `mapstructure:"kind" validate:"oneof=auto html text legacy-text"`
	NameOrder string `mapstructure:"name_order" validate:"oneof=auto scientific-first common-first"`
	CellMode  string `mapstructure:"cell_mode" validate:"oneof=text markdown"`
	Header    bool   `mapstructure:"header"`

	Images struct {
		Dir string `mapstructure:"dir" validate:"required"`
		Ext string `mapstructure:"ext" validate:"required,startswith=."`
	} `mapstructure:"images"`

	Links struct {
		Page   string `mapstructure:"page" validate:"required"`
		Indent string `mapstructure:"indent"`
	} `mapstructure:"links"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("kind", "auto")
	v.SetDefault("name_order", "auto")
	v.SetDefault("cell_mode", "text")
	v.SetDefault("header", false)
	v.SetDefault("images.dir", "images")
	v.SetDefault("images.ext", ".jpg")
	v.SetDefault("links.page", "plant-details.html")
	v.SetDefault("links.indent", "      ")
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their config key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}()

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, describe(err)
	}
	return &cfg, nil
}

// describe turns validator errors into one readable message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value()))
		case "required":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
