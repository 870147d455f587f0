// Package config loads the formkit CLI configuration with viper.
//
// The file is formkit.yaml, searched in the working directory and then in
// $XDG_CONFIG_HOME/formkit. Environment variables prefixed FORMKIT_ override
// file values (FORMKIT_LOG_FORMAT=json).
//
//	settings:
//	  debug: true
//	plugins:
//	  - plugins/contact.yaml
//	log_format: text
package config
