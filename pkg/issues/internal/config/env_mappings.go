package config

import (
	"reflect"
	"strings"
	"sync"
)

// actionInputPrefix is how GitHub Actions exposes step inputs to the process.
const actionInputPrefix = "INPUT_"

// TagMapping maps a struct tag value (env var, flag or input name) to a config path.
type TagMapping struct {
	Name       string
	ConfigPath string
}

var (
	mappingsMu     sync.Mutex
	cachedMappings = map[string][]TagMapping{}
)

// GenerateMappings returns the mappings declared by the given struct tag on Config.
func GenerateMappings(tag string) []TagMapping {
	mappingsMu.Lock()
	defer mappingsMu.Unlock()
	if cached, ok := cachedMappings[tag]; ok {
		return cached
	}
	mappings := extractMappings(reflect.TypeOf(Config{}), "", tag)
	cachedMappings[tag] = mappings
	return mappings
}

// extractMappings recursively extracts tag mappings from struct fields
func extractMappings(t reflect.Type, prefix, tag string) []TagMapping {
	var mappings []TagMapping
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		koanfTag := field.Tag.Get("koanf")
		if koanfTag == "" || koanfTag == "-" {
			continue
		}
		configPath := koanfTag
		if prefix != "" {
			configPath = prefix + "." + koanfTag
		}
		if value := field.Tag.Get(tag); value != "" && value != "-" {
			mappings = append(mappings, TagMapping{Name: value, ConfigPath: configPath})
		}
		if field.Type.Kind() == reflect.Struct && field.Type.PkgPath() != "time" {
			mappings = append(mappings, extractMappings(field.Type, configPath, tag)...)
		}
	}
	return mappings
}

// envToConfigMap maps environment variable names to config paths.
func envToConfigMap() map[string]string {
	result := make(map[string]string)
	for _, m := range GenerateMappings("env") {
		result[m.Name] = m.ConfigPath
	}
	return result
}

// inputToConfigMap maps action input variables (INPUT_ISSUE-NUMBERS) to config paths.
func inputToConfigMap() map[string]string {
	result := make(map[string]string)
	for _, m := range GenerateMappings("input") {
		result[actionInputPrefix+strings.ToUpper(m.Name)] = m.ConfigPath
	}
	return result
}

// flagToConfigMap maps CLI flag names to config paths.
func flagToConfigMap() map[string]string {
	result := make(map[string]string)
	for _, m := range GenerateMappings("flag") {
		result[m.Name] = m.ConfigPath
	}
	return result
}
