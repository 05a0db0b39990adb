package app

import "testing"

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		in   Config
		want Config
	}{
		{
			name: "未设置时保留命令行参数",
			in:   Config{Verbose: true, StartScene: 4},
			want: Config{Verbose: true, StartScene: 4},
		},
		{
			name: "环境变量覆盖",
			env: map[string]string{
				"PULPCASE_START_SCENE":  "11",
				"PULPCASE_TYPING_SPEED": "2.5",
				"PULPCASE_CASE_DIR":     "testdata/case",
			},
			in:   Config{StartScene: 4},
			want: Config{StartScene: 11, TypingSpeed: 2.5, CaseDir: "testdata/case"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := tt.in
			if err := ApplyEnv(&cfg); err != nil {
				t.Fatalf("ApplyEnv() error: %v", err)
			}
			if cfg != tt.want {
				t.Errorf("ApplyEnv() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("PULPCASE_START_SCENE", "eleven")
	var cfg Config
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv() should reject a non-numeric scene")
	}
}
