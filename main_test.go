package main

import (
	"testing"
	"time"
)

func TestDurationFromEnv(t *testing.T) {
	t.Setenv("SESSION_TTL", "")
	d, err := durationFromEnv("SESSION_TTL", time.Hour)
	if err != nil || d != time.Hour {
		t.Error("Expected the default when unset")
	}

	t.Setenv("SESSION_TTL", "90m")
	d, err = durationFromEnv("SESSION_TTL", time.Hour)
	if err != nil || d != 90*time.Minute {
		t.Errorf("Expected 90m, got %v (%v)", d, err)
	}

	t.Setenv("SESSION_TTL", "3600")
	d, err = durationFromEnv("SESSION_TTL", time.Minute)
	if err != nil || d != time.Hour {
		t.Errorf("Expected a bare number to be read as seconds, got %v (%v)", d, err)
	}

	for _, bad := range []string{"soon", "-5m", "0"} {
		t.Setenv("SESSION_TTL", bad)
		if _, err := durationFromEnv("SESSION_TTL", time.Hour); err == nil {
			t.Error("Expected an error for " + bad)
		}
	}
}
