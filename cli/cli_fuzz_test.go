package cli

import (
	"testing"
	"time"
)

func FuzzCreateConfigFromCLI(f *testing.F) {
	// Seed with valid inputs
	f.Add("counting", "4,2,2,8,3,3,1", 0)
	f.Add("radix", "170 45 75 90 802 24 2 66", 0)
	f.Add("bucket", "0.78, 0.17, 0.39", 0)
	f.Add("Bucket Sort", "", 10)
	// Invalid inputs
	f.Add("", "", 0)
	f.Add("heap", "1", 0)
	f.Add("counting", "1, two", 0)
	f.Add("counting", "-1", 0)
	f.Add("bucket", "1e400", 0)
	f.Add("radix", "", -5)

	f.Fuzz(func(t *testing.T, algorithm, values string, random int) {
		// Should not panic, invalid input returns errors
		cfg, err := createConfigFromCLI(algorithm, values, random, 1, time.Second, "", "", false, false)
		if err != nil {
			return
		}
		if err := cfg.Validate(); err != nil {
			return
		}
		if _, err := cfg.GetValues(); err != nil {
			t.Fatalf("valid config %+v failed to produce values: %v", cfg.Input, err)
		}
	})
}
