package config

import (
	"os"
	"testing"
	"time"
)

const testSecret = "this_is_a_test_secret_key_with_32_chars_minimum"

func TestLoadConfig(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("JWT_SECRET_KEY", testSecret)
	os.Setenv("APP_URL", "https://friends.example.com/")
	defer os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBDriver != DriverPostgres {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DriverPostgres)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}

	if cfg.AppURL != "https://friends.example.com" {
		t.Errorf("AppURL = %q, trailing slash should be trimmed", cfg.AppURL)
	}

	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins = %v, want the two local defaults", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"JWT_SECRET_KEY": testSecret,
			},
		},
		{
			name: "Missing JWT_SECRET_KEY",
			envVars: map[string]string{
				"DB_PASSWORD": "password",
			},
		},
		{
			name: "SQLite without DSN",
			envVars: map[string]string{
				"DB_DRIVER":      "sqlite",
				"JWT_SECRET_KEY": testSecret,
			},
		},
		{
			name: "Unknown driver",
			envVars: map[string]string{
				"DB_DRIVER":      "oracle",
				"DB_PASSWORD":    "password",
				"JWT_SECRET_KEY": testSecret,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			defer os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error for missing required field, got nil")
			}
		})
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := &Config{
		DBDriver:            DriverPostgres,
		DBPassword:          "password",
		JWTSecret:           "short",
		RateLimitWindowSecs: 60,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for short JWT secret, got nil")
	}
}

func TestValidate_SQLiteWithDSN(t *testing.T) {
	cfg := &Config{
		DBDriver:            DriverSQLite,
		DBDSN:               "file:friends.db",
		JWTSecret:           testSecret,
		RateLimitWindowSecs: 60,
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:    "production",
				AppURL:    "https://friends.example.com",
				DBDriver:  DriverPostgres,
				DBSSLMode: "require",
				JWTSecret: "production_secret_key_different_from_default",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:    "development",
				DBDriver:  DriverSQLite,
				DBSSLMode: "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:    "production",
				AppURL:    "https://friends.example.com",
				DBDriver:  DriverPostgres,
				DBSSLMode: "disable",
				JWTSecret: "production_secret",
			},
			shouldErr: true,
		},
		{
			name: "Production with default JWT secret",
			cfg: &Config{
				AppEnv:    "production",
				AppURL:    "https://friends.example.com",
				DBDriver:  DriverPostgres,
				DBSSLMode: "require",
				JWTSecret: "your_jwt_secret_minimum_32_chars_here_change_this",
			},
			shouldErr: true,
		},
		{
			name: "Production on sqlite",
			cfg: &Config{
				AppEnv:    "production",
				AppURL:    "https://friends.example.com",
				DBDriver:  DriverSQLite,
				JWTSecret: "production_secret_key_different_from_default",
			},
			shouldErr: true,
		},
		{
			name: "Production with wildcard CORS",
			cfg: &Config{
				AppEnv:             "production",
				AppURL:             "https://friends.example.com",
				DBDriver:           DriverMySQL,
				JWTSecret:          "production_secret_key_different_from_default",
				CORSAllowedOrigins: []string{"*"},
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "Postgres",
			cfg: &Config{
				DBDriver:   DriverPostgres,
				DBHost:     "localhost",
				DBPort:     "5432",
				DBUser:     "testuser",
				DBPassword: "testpass",
				DBName:     "testdb",
				DBSSLMode:  "disable",
			},
			want: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable",
		},
		{
			name: "MySQL",
			cfg: &Config{
				DBDriver:   DriverMySQL,
				DBHost:     "db",
				DBPort:     "3306",
				DBUser:     "root",
				DBPassword: "root",
				DBName:     "friends",
			},
			want: "root:root@tcp(db:3306)/friends?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name: "Explicit DSN wins",
			cfg: &Config{
				DBDriver: DriverSQLite,
				DBDSN:    "file::memory:",
			},
			want: "file::memory:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetDSN(); got != tt.want {
				t.Errorf("GetDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetRateLimitWindow(t *testing.T) {
	cfg := &Config{RateLimitWindowSecs: 90}

	if got := cfg.GetRateLimitWindow(); got != 90*time.Second {
		t.Errorf("GetRateLimitWindow() = %v, want %v", got, 90*time.Second)
	}
}

func TestURL(t *testing.T) {
	cfg := &Config{AppURL: "http://localhost:8080"}

	if got := cfg.URL("users/2"); got != "http://localhost:8080/users/2" {
		t.Errorf("URL() = %q", got)
	}
	if got := cfg.URL("/posts"); got != "http://localhost:8080/posts" {
		t.Errorf("URL() = %q", got)
	}
}
