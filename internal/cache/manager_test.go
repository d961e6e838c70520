package cache

import (
	"testing"
	"time"

	"rastreio/internal/carrier"
	"rastreio/internal/detector"
)

func testResults() []detector.Result {
	table := carrier.DefaultTable()
	return []detector.Result{
		{Carrier: table.ByID("correios"), Confidence: 79, Score: 79},
	}
}

func TestManager_GetSet(t *testing.T) {
	m := NewManager(Config{TTL: time.Minute, CleanupInterval: time.Minute})
	defer m.Close()

	key := Key("BR123456789BR", detector.Options{})

	if _, ok := m.Get(key); ok {
		t.Error("Get() should miss on an empty cache")
	}

	results := testResults()
	m.Set(key, results)

	cached, ok := m.Get(key)
	if !ok {
		t.Fatal("Get() should hit after Set()")
	}
	if len(cached) != 1 || cached[0].Carrier.ID != "correios" {
		t.Errorf("Get() returned %+v, expected the stored results", cached)
	}
}

func TestManager_Expiry(t *testing.T) {
	m := NewManager(Config{TTL: 10 * time.Millisecond, CleanupInterval: time.Minute})
	defer m.Close()

	key := Key("BR123456789BR", detector.Options{})
	m.Set(key, testResults())

	time.Sleep(20 * time.Millisecond)

	if _, ok := m.Get(key); ok {
		t.Error("Get() should miss after the TTL elapsed")
	}
}

func TestManager_Disabled(t *testing.T) {
	m := NewManager(Config{Disabled: true})
	defer m.Close()

	if m.IsEnabled() {
		t.Error("IsEnabled() should be false for a disabled manager")
	}

	key := Key("BR123456789BR", detector.Options{})
	m.Set(key, testResults())
	if _, ok := m.Get(key); ok {
		t.Error("Get() should always miss on a disabled manager")
	}
}

func TestManager_DefaultsApplied(t *testing.T) {
	m := NewManager(Config{})
	defer m.Close()

	if m.cfg.TTL != DefaultConfig().TTL {
		t.Errorf("TTL = %v, expected default %v", m.cfg.TTL, DefaultConfig().TTL)
	}
	if m.cfg.CleanupInterval != DefaultConfig().CleanupInterval {
		t.Errorf("CleanupInterval = %v, expected default %v", m.cfg.CleanupInterval, DefaultConfig().CleanupInterval)
	}
}

func TestManager_CleanupRemovesExpired(t *testing.T) {
	m := NewManager(Config{TTL: time.Millisecond, CleanupInterval: time.Minute})
	defer m.Close()

	m.Set("a", testResults())
	m.Set("b", testResults())
	time.Sleep(5 * time.Millisecond)

	m.cleanup()

	count := 0
	m.memory.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	if count != 0 {
		t.Errorf("cleanup() left %d entries, expected 0", count)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		codeA string
		optsA detector.Options
		codeB string
		optsB detector.Options
		same  bool
	}{
		{
			name:  "normalization folds equivalent codes",
			codeA: "BR123456789BR",
			codeB: "  br 123456789 br ",
			same:  true,
		},
		{
			name:  "different codes differ",
			codeA: "BR123456789BR",
			codeB: "AA123456785BR",
			same:  false,
		},
		{
			name:  "filter options participate",
			codeA: "BR123456789BR",
			codeB: "BR123456789BR",
			optsB: detector.Options{MinConfidence: 80},
			same:  false,
		},
		{
			name:  "user does not participate",
			codeA: "BR123456789BR",
			optsA: detector.Options{UserID: "u1"},
			codeB: "BR123456789BR",
			optsB: detector.Options{UserID: "u2"},
			same:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Key(tt.codeA, tt.optsA)
			b := Key(tt.codeB, tt.optsB)
			if (a == b) != tt.same {
				t.Errorf("Key equality = %v, expected %v (%q vs %q)", a == b, tt.same, a, b)
			}
		})
	}
}
