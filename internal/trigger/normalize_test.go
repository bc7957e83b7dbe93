package trigger

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeTriggers(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"simple string", "hover focus", []string{"hover", "focus"}},
		{"case and dedupe", "Hover  FOCUS hover", []string{"hover", "focus"}},
		{"string slice", []string{"click", "hover"}, []string{"click", "hover"}},
		{"mixed slice drops non-strings", []any{"focus", 3, "blur"}, []string{"focus", "blur"}},
		{"unknown tokens survive", "hover wiggle", []string{"hover", "wiggle"}},
		{"empty string", "", nil},
		{"nil", nil, nil},
		{"unsupported shape", 42, nil},
	}
	for _, tt := range tests {
		if got := NormalizeTriggers(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: NormalizeTriggers(%v) = %v, want %v", tt.name, tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeDelay(t *testing.T) {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	tests := []struct {
		name string
		raw  any
		want Delay
	}{
		{"number applies to both", 200, Delay{Show: ms(200), Hide: ms(200)}},
		{"float from decoded json", float64(75), Delay{Show: ms(75), Hide: ms(75)}},
		{"numeric string", "150", Delay{Show: ms(150), Hide: ms(150)}},
		{"garbage string", "soon", Delay{}},
		{"negative clamps", -5, Delay{}},
		{"record", map[string]any{"show": 100, "hide": 50}, Delay{Show: ms(100), Hide: ms(50)}},
		{"partial record", map[string]any{"show": 100}, Delay{Show: ms(100)}},
		{"record with junk field", map[string]any{"show": "fast", "hide": 30}, Delay{Hide: ms(30)}},
		{"nil", nil, Delay{}},
		{"unsupported shape", []int{1, 2}, Delay{}},
	}
	for _, tt := range tests {
		if got := NormalizeDelay(tt.raw); got != tt.want {
			t.Errorf("%s: NormalizeDelay(%v) = %+v, want %+v", tt.name, tt.raw, got, tt.want)
		}
	}
}
