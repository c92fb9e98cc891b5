package env

import "os"

// Get returns the value of the environment variable or the fallback when the
// variable is unset or empty. Used for process-level knobs (LOG_FORMAT, PORT)
// that live outside the typed config struct.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
