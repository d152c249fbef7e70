package observe

import (
	"context"
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "missing service name",
			config:  Config{},
			wantErr: ErrMissingServiceName,
		},
		{
			name:   "valid minimal",
			config: Config{ServiceName: "svc"},
		},
		{
			name: "invalid tracing exporter",
			config: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Enabled: true, Exporter: "jaeger"},
			},
			wantErr: ErrInvalidTracingExporter,
		},
		{
			name: "invalid sample pct",
			config: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.5},
			},
			wantErr: ErrInvalidSamplePct,
		},
		{
			name: "invalid metrics exporter",
			config: Config{
				ServiceName: "svc",
				Metrics:     MetricsConfig{Enabled: true, Exporter: "statsd"},
			},
			wantErr: ErrInvalidMetricsExporter,
		},
		{
			name: "invalid log level",
			config: Config{
				ServiceName: "svc",
				Logging:     LoggingConfig{Enabled: true, Level: "verbose"},
			},
			wantErr: ErrInvalidLogLevel,
		},
		{
			name: "disabled subsystems skip validation",
			config: Config{
				ServiceName: "svc",
				Tracing:     TracingConfig{Exporter: "bogus"},
				Metrics:     MetricsConfig{Exporter: "bogus"},
				Logging:     LoggingConfig{Level: "bogus"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewObserver_AllDisabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "svc"})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}

	// Noop providers so consumers never nil-check.
	if obs.Tracer() == nil {
		t.Error("Tracer() should not be nil when tracing is disabled")
	}
	if obs.Meter() == nil {
		t.Error("Meter() should not be nil when metrics are disabled")
	}
	if obs.Logger() == nil {
		t.Error("Logger() should not be nil when logging is disabled")
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewObserver_StdoutDiscardExporters(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "svc",
		Version:     "1.2.3",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewObserver_InvalidConfig(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("NewObserver() error = %v, want ErrMissingServiceName", err)
	}
}
