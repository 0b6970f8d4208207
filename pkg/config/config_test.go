package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("pipeline-service")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Pipeline.StageInterval != 500*time.Millisecond {
		t.Errorf("Pipeline.StageInterval = %v, want 500ms", cfg.Pipeline.StageInterval)
	}
	if cfg.Export.SettleDelay != 1500*time.Millisecond {
		t.Errorf("Export.SettleDelay = %v, want 1.5s", cfg.Export.SettleDelay)
	}
	if cfg.Export.NotificationDuration != 4*time.Second {
		t.Errorf("Export.NotificationDuration = %v, want 4s", cfg.Export.NotificationDuration)
	}
	if cfg.Server.Environment != EnvDevelopment {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	os.Setenv("LOGIFLOW_PIPELINE_STAGE_INTERVAL", "50ms")
	os.Setenv("LOGIFLOW_SERVER_PORT", "9090")
	defer os.Unsetenv("LOGIFLOW_PIPELINE_STAGE_INTERVAL")
	defer os.Unsetenv("LOGIFLOW_SERVER_PORT")

	cfg, err := Load("pipeline-service")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Pipeline.StageInterval != 50*time.Millisecond {
		t.Errorf("Pipeline.StageInterval = %v, want 50ms", cfg.Pipeline.StageInterval)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
}

func TestPipelineConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  PipelineConfig
		wantErr bool
	}{
		{name: "positive interval", config: PipelineConfig{StageInterval: time.Second}, wantErr: false},
		{name: "zero interval", config: PipelineConfig{StageInterval: 0}, wantErr: true},
		{name: "negative interval", config: PipelineConfig{StageInterval: -time.Second}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ExportConfig
		wantErr bool
	}{
		{name: "valid", config: ExportConfig{SettleDelay: time.Second, NotificationDuration: time.Second}, wantErr: false},
		{name: "zero settle delay", config: ExportConfig{SettleDelay: 0, NotificationDuration: time.Second}, wantErr: true},
		{name: "zero notification duration", config: ExportConfig{SettleDelay: time.Second, NotificationDuration: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWithValidation_ProductionOrigins(t *testing.T) {
	os.Setenv("LOGIFLOW_SERVER_ENVIRONMENT", "production")
	defer os.Unsetenv("LOGIFLOW_SERVER_ENVIRONMENT")

	os.Setenv("LOGIFLOW_SERVER_ALLOWED_ORIGINS", "*")
	if _, err := LoadWithValidation("pipeline-service"); err == nil {
		t.Error("expected error for wildcard origins in production")
	}

	os.Setenv("LOGIFLOW_SERVER_ALLOWED_ORIGINS", "https://demo.logiflow.io")
	defer os.Unsetenv("LOGIFLOW_SERVER_ALLOWED_ORIGINS")
	if _, err := LoadWithValidation("pipeline-service"); err != nil {
		t.Errorf("unexpected error with explicit origins: %v", err)
	}
}
