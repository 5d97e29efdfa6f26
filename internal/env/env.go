package env

import (
	"os"
	"strconv"
	"time"
)

const notExists = "~!-===X===-!~"

// GetString retrieves the value of the environment variable named by the key.
// It returns the value, or if the variable is not present, it returns the defaultValue.
func GetString(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

// GetBool returns true if the env variable with the key set and is truthy and
// defaultValue otherwise.
func GetBool(key string, defaultValue bool) bool {
	strValue := GetString(key, notExists)
	if strValue == notExists {
		return defaultValue
	}

	if strValue == "1" || strValue == "true" {
		return true
	}

	return false
}

// GetInt returns an integer if the env variable with the key set and contains
// an integer and defaultValue otherwise.
func GetInt(key string, defaultValue int) int {
	strValue := GetString(key, notExists)
	if strValue == notExists {
		return defaultValue
	}

	intValue, err := strconv.ParseInt(strValue, 10, 64)
	if err != nil {
		return defaultValue
	}

	return int(intValue)
}

// GetDuration parses the env variable as a time.Duration ("1s", "500ms") and
// returns defaultValue when the variable is missing or malformed.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := GetString(key, notExists)
	if strValue == notExists {
		return defaultValue
	}

	duration, err := time.ParseDuration(strValue)
	if err != nil {
		return defaultValue
	}

	return duration
}
