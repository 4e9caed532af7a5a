package workout

import "testing"

func intPtr(v int) *int { return &v }

// ============================================================
// InitialTime / TotalRounds
// ============================================================

func TestInitialTimeAndRounds(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		initial int
		rounds  int
	}{
		{"emom", Config{Mode: ModeEMOM, EMOM: &EMOMConfig{Minutes: 10, IntervalSeconds: 60}}, 60, 10},
		{"emom missing", Config{Mode: ModeEMOM}, 60, 10},
		{"amrap", Config{Mode: ModeAMRAP, AMRAP: &AMRAPConfig{Minutes: 20}}, 1200, AMRAPRounds},
		{"amrap missing", Config{Mode: ModeAMRAP}, 720, AMRAPRounds},
		{"tabata", Config{Mode: ModeTabata, Tabata: &TabataConfig{Rounds: 6, WorkSeconds: 30, RestSeconds: 15}}, 30, 6},
		{"tabata missing", Config{Mode: ModeTabata}, 20, 8},
		{"for time", Config{Mode: ModeForTime, ForTime: &ForTimeConfig{CapMinutes: intPtr(15)}}, 0, 1},
		{"custom", Config{Mode: ModeCustomInterval, CustomInterval: &CustomIntervalConfig{Rounds: 3, WorkMinutes: 1, WorkSeconds: 30}}, 90, 3},
		{"custom missing", Config{Mode: ModeCustomInterval}, 60, 5},
		{"unknown", Config{Mode: "YOGA"}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialTime(tt.cfg); got != tt.initial {
				t.Fatalf("InitialTime = %d, want %d", got, tt.initial)
			}
			if got := TotalRounds(tt.cfg); got != tt.rounds {
				t.Fatalf("TotalRounds = %d, want %d", got, tt.rounds)
			}
			// Repeat calls must agree.
			if InitialTime(tt.cfg) != tt.initial || TotalRounds(tt.cfg) != tt.rounds {
				t.Fatal("results changed on repeated call")
			}
		})
	}
}

func TestZeroFieldsFallBackToDefaults(t *testing.T) {
	cfg := Config{Mode: ModeEMOM, EMOM: &EMOMConfig{}}
	if got := InitialTime(cfg); got != 60 {
		t.Fatalf("InitialTime = %d, want 60", got)
	}
	if got := TotalRounds(cfg); got != 10 {
		t.Fatalf("TotalRounds = %d, want 10", got)
	}
}

func TestIsCountUpMode(t *testing.T) {
	for _, mi := range Modes() {
		want := mi.Mode == ModeForTime
		if got := IsCountUpMode(mi.Mode); got != want {
			t.Fatalf("IsCountUpMode(%s) = %v, want %v", mi.Mode, got, want)
		}
	}
}

// ============================================================
// HandlePhaseEnd
// ============================================================

func TestEMOMPhaseEnd(t *testing.T) {
	cfg := Config{Mode: ModeEMOM, EMOM: &EMOMConfig{Minutes: 10, IntervalSeconds: 60}}
	s := NewState(cfg)
	s.Status = StatusRunning

	for i := 0; i < 9; i++ {
		p := HandlePhaseEnd(cfg, s)
		if p.Finished() {
			t.Fatalf("finished early at call %d", i+1)
		}
		s = p.Apply(s)
		if s.Remaining != 60 {
			t.Fatalf("remaining = %d, want 60", s.Remaining)
		}
	}
	if s.CurrentRound != 10 || s.Status != StatusRunning {
		t.Fatalf("after 9 calls: round=%d status=%s", s.CurrentRound, s.Status)
	}
	if p := HandlePhaseEnd(cfg, s); !p.Finished() {
		t.Fatal("10th call should finish")
	}
}

func TestAMRAPPhaseEndFinishes(t *testing.T) {
	cfg := DefaultConfig(ModeAMRAP)
	if p := HandlePhaseEnd(cfg, NewState(cfg)); !p.Finished() {
		t.Fatal("AMRAP phase end should finish")
	}
}

func TestTabataPhaseEnd(t *testing.T) {
	cfg := Config{Mode: ModeTabata, Tabata: &TabataConfig{Rounds: 8, WorkSeconds: 20, RestSeconds: 10}}
	s := NewState(cfg)

	s = HandlePhaseEnd(cfg, s).Apply(s)
	if s.IsWorkPhase || s.CurrentRound != 1 || s.Remaining != 10 {
		t.Fatalf("work->rest: %+v", s)
	}
	s = HandlePhaseEnd(cfg, s).Apply(s)
	if !s.IsWorkPhase || s.CurrentRound != 2 || s.Remaining != 20 {
		t.Fatalf("rest->work: %+v", s)
	}

	for !(s.CurrentRound == 8 && !s.IsWorkPhase) {
		p := HandlePhaseEnd(cfg, s)
		if p.Finished() {
			t.Fatalf("finished early: %+v", s)
		}
		s = p.Apply(s)
	}
	if p := HandlePhaseEnd(cfg, s); !p.Finished() {
		t.Fatal("rest of round 8 should finish")
	}
}

func TestCustomIntervalPhaseEnd(t *testing.T) {
	cfg := Config{Mode: ModeCustomInterval, CustomInterval: &CustomIntervalConfig{
		Rounds: 2, WorkMinutes: 1, RestSeconds: 30,
	}}
	s := NewState(cfg)

	s = HandlePhaseEnd(cfg, s).Apply(s)
	if s.IsWorkPhase || s.Remaining != 30 || s.CurrentRound != 1 {
		t.Fatalf("work->rest: %+v", s)
	}
	s = HandlePhaseEnd(cfg, s).Apply(s)
	if !s.IsWorkPhase || s.Remaining != 60 || s.CurrentRound != 2 {
		t.Fatalf("rest->work: %+v", s)
	}
	s = HandlePhaseEnd(cfg, s).Apply(s)
	if s.IsWorkPhase {
		t.Fatal("expected rest phase in final round")
	}
	if p := HandlePhaseEnd(cfg, s); !p.Finished() {
		t.Fatal("rest of last round should finish")
	}
}

func TestCustomIntervalNoRest(t *testing.T) {
	cfg := Config{Mode: ModeCustomInterval, CustomInterval: &CustomIntervalConfig{
		Rounds: 3, WorkSeconds: 40,
	}}
	s := NewState(cfg)

	for round := 2; round <= 3; round++ {
		p := HandlePhaseEnd(cfg, s)
		if p.IsWorkPhase != nil {
			t.Fatal("phase flag should not be touched without rest")
		}
		s = p.Apply(s)
		if !s.IsWorkPhase || s.CurrentRound != round || s.Remaining != 40 {
			t.Fatalf("round %d: %+v", round, s)
		}
	}
	if p := HandlePhaseEnd(cfg, s); !p.Finished() {
		t.Fatal("last round without rest should finish")
	}
}

func TestCustomIntervalMissingFinishes(t *testing.T) {
	cfg := Config{Mode: ModeCustomInterval}
	if p := HandlePhaseEnd(cfg, NewState(cfg)); !p.Finished() {
		t.Fatal("missing custom parameters should finish")
	}
}

func TestForTimePhaseEndIsEmpty(t *testing.T) {
	cfg := DefaultConfig(ModeForTime)
	s := NewState(cfg)
	for i := 0; i < 5; i++ {
		if p := HandlePhaseEnd(cfg, s); !p.Empty() {
			t.Fatalf("expected empty patch, got %+v", p)
		}
	}
}

func TestUnknownModeFinishes(t *testing.T) {
	cfg := Config{Mode: "PILATES"}
	if p := HandlePhaseEnd(cfg, NewState(cfg)); !p.Finished() {
		t.Fatal("unknown mode should finish")
	}
}

// ============================================================
// TotalWorkoutTime / defaults
// ============================================================

func TestTotalWorkoutTime(t *testing.T) {
	tests := []struct {
		cfg  Config
		want int
	}{
		{DefaultConfig(ModeEMOM), 600},
		{DefaultConfig(ModeAMRAP), 720},
		{DefaultConfig(ModeTabata), 240},
		{DefaultConfig(ModeForTime), 0},
		{Config{Mode: ModeForTime, ForTime: &ForTimeConfig{CapMinutes: intPtr(20)}}, 1200},
		{DefaultConfig(ModeCustomInterval), 450},
		{Config{Mode: ModeCustomInterval}, 0},
	}
	for _, tt := range tests {
		if got := TotalWorkoutTime(tt.cfg); got != tt.want {
			t.Fatalf("TotalWorkoutTime(%s) = %d, want %d", tt.cfg.Mode, got, tt.want)
		}
	}
}

func TestDefaultConfigUnknownIsEMOM(t *testing.T) {
	cfg := DefaultConfig("nope")
	if cfg.Mode != ModeEMOM || cfg.EMOM == nil {
		t.Fatalf("unexpected default: %+v", cfg)
	}
}

func TestDefaultConfigsValidate(t *testing.T) {
	for _, mi := range Modes() {
		if err := DefaultConfig(mi.Mode).Validate(); err != nil {
			t.Fatalf("default %s invalid: %v", mi.Mode, err)
		}
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	bad := []Config{
		{Mode: ModeEMOM, EMOM: &EMOMConfig{Minutes: 0, IntervalSeconds: 60}},
		{Mode: ModeTabata, Tabata: &TabataConfig{Rounds: 30, WorkSeconds: 20}},
		{Mode: ModeForTime, ForTime: &ForTimeConfig{CapMinutes: intPtr(-1)}},
		{Mode: ModeCustomInterval, CustomInterval: &CustomIntervalConfig{Rounds: 2}},
		{Mode: ModeAMRAP},
		{Mode: "X"},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"emom":            ModeEMOM,
		"for-time":        ModeForTime,
		"Custom":          ModeCustomInterval,
		"custom_interval": ModeCustomInterval,
		" tabata ":        ModeTabata,
	}
	for in, want := range tests {
		got, ok := ParseMode(in)
		if !ok || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseMode("spin"); ok {
		t.Fatal("expected unknown mode to fail")
	}
}
