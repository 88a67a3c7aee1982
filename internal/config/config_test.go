package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{"valid duration", "30s", 5 * time.Second, 30 * time.Second},
		{"invalid duration falls back", "not-a-duration", 5 * time.Second, 5 * time.Second},
		{"empty falls back", "", 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_DURATION", tt.value)
			}
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.want {
				t.Errorf("mustDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "123456", []string{"123456"}},
		{"multiple with spaces", "123, 456 ,789", []string{"123", "456", "789"}},
		{"quoted entries", `"123",'456'`, []string{"123", "456"}},
		{"trailing comma", "123,", []string{"123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitAndTrim(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DANWATCH_TELEGRAM_BOT_TOKEN", "test-token")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %v, want :8080", cfg.ListenPort)
	}
	if cfg.PollInterval != 20*time.Second {
		t.Errorf("PollInterval = %v, want 20s", cfg.PollInterval)
	}
	if cfg.RecoveryInterval != 5*time.Second {
		t.Errorf("RecoveryInterval = %v, want 5s", cfg.RecoveryInterval)
	}
	if cfg.LedgerBackend != LedgerSQLite {
		t.Errorf("LedgerBackend = %v, want sqlite", cfg.LedgerBackend)
	}
	if cfg.BaseURL != "https://www.daangn.com" {
		t.Errorf("BaseURL = %v", cfg.BaseURL)
	}
	if cfg.EpochOffset != 0 {
		t.Errorf("EpochOffset = %v, want 0", cfg.EpochOffset)
	}
}

func TestLoadMissingToken(t *testing.T) {
	if os.Getenv("DANWATCH_TELEGRAM_BOT_TOKEN") != "" {
		t.Skip("token set in environment")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic without a bot token")
		}
	}()
	Load()
}

func TestLoadRejectsUnknownLedgerBackend(t *testing.T) {
	t.Setenv("DANWATCH_TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("DANWATCH_LEDGER_BACKEND", "dynamodb")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic on an unknown ledger backend")
		}
	}()
	Load()
}

func TestLoadRedisBackendRequiresAddr(t *testing.T) {
	t.Setenv("DANWATCH_TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("DANWATCH_LEDGER_BACKEND", "redis")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic when redis backend has no addr")
		}
	}()
	Load()
}

func TestLoadChatIDs(t *testing.T) {
	t.Setenv("DANWATCH_TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("DANWATCH_TELEGRAM_CHAT_IDS", "111, 222,333")

	cfg := Load()

	want := []string{"111", "222", "333"}
	if len(cfg.DefaultChatIDs) != len(want) {
		t.Fatalf("DefaultChatIDs = %v, want %v", cfg.DefaultChatIDs, want)
	}
	for i := range want {
		if cfg.DefaultChatIDs[i] != want[i] {
			t.Errorf("DefaultChatIDs[%d] = %v, want %v", i, cfg.DefaultChatIDs[i], want[i])
		}
	}
}
