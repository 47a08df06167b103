package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UserFixture is one user entry of a YAML user file.
type UserFixture struct {
	Name          string   `yaml:"name"`
	Email         string   `yaml:"email"`
	PhoneNumber   string   `yaml:"phone_number"`
	Subscriptions []string `yaml:"subscriptions"`
	Channels      []string `yaml:"channels"`
}

type userFile struct {
	Users []UserFixture `yaml:"users"`
}

// LoadUserFixtures reads the YAML user file at filePath. Contact fields may
// reference environment variables as ${ENV:VAR_NAME}. A missing file is an
// error.
func LoadUserFixtures(filePath string) ([]UserFixture, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // path is operator supplied
	if err != nil {
		return nil, fmt.Errorf("reading user file %q: %w", filePath, err)
	}

	var f userFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing user file %q: %w", filePath, err)
	}

	for i := range f.Users {
		u := &f.Users[i]
		if u.Email, err = interpolateEnv(u.Email); err != nil {
			return nil, fmt.Errorf("user %d (%s) email: %w", i, u.Name, err)
		}
		if u.PhoneNumber, err = interpolateEnv(u.PhoneNumber); err != nil {
			return nil, fmt.Errorf("user %d (%s) phone_number: %w", i, u.Name, err)
		}
	}
	return f.Users, nil
}

// interpolateEnv replaces all ${ENV:VAR_NAME} patterns in s with the corresponding
// environment variable values. Returns an error if a referenced variable is not set.
func interpolateEnv(s string) (string, error) {
	result := s
	for {
		start := strings.Index(result, "${ENV:")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}")
		if end == -1 {
			break
		}
		end += start
		varName := result[start+6 : end]
		value := os.Getenv(varName)
		if value == "" {
			return "", fmt.Errorf("required env var %q is not set", varName)
		}
		result = result[:start] + value + result[end+1:]
	}
	return result, nil
}
