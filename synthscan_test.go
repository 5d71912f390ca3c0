package synthscan

import (
	"testing"
)

func TestRecoveredBoundary(t *testing.T) {
	t.Parallel()

	t.Run("panic is swallowed and reported", func(t *testing.T) {
		t.Parallel()
		var gotTag string
		var gotVal any
		cfg := &Config{OnPanic: func(tag string, r any) {
			gotTag, gotVal = tag, r
		}}

		cfg.recovered("entropy", func() { panic("boom") })
		if gotTag != "entropy" || gotVal != "boom" {
			t.Errorf("OnPanic got (%q, %v), want (entropy, boom)", gotTag, gotVal)
		}
	})

	t.Run("nil callback still swallows the panic", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		cfg.recovered("edge_density", func() { panic("boom") })
	})

	t.Run("values set before the panic survive", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		x := 0.0
		cfg.recovered("ela_mean", func() {
			x = 1.5
			panic("after assignment")
		})
		if x != 1.5 {
			t.Errorf("x = %v, want 1.5", x)
		}
	})
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.defaults()
	if cfg.Rules == nil {
		t.Fatal("defaults() must install DefaultRules")
	}
	if cfg.Rules.Base != 0.45 {
		t.Errorf("Rules.Base = %v, want 0.45", cfg.Rules.Base)
	}
	if cfg.HTTPClient == nil {
		t.Error("defaults() must install an HTTP client")
	}
	if cfg.UserAgent == "" {
		t.Error("defaults() must install a user agent")
	}
}
