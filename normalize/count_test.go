package normalize

import "testing"

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want uint64
	}{
		{"plain", "1234", 1234},
		{"thousands separator", "1,234", 1234},
		{"millions separator", "12,345,678", 12345678},
		{"k suffix", "12.3K", 12300},
		{"m suffix", "2M", 2000000},
		{"b suffix", "1B", 1000000000},
		{"decimal m", "10.5M", 10500000},
		{"label prefix", "Followers: 4.2K", 4200},
		{"label suffix", "100 posts", 100},
		{"instagram stat", "10M followers", 10000000},
		{"empty", "", 0},
		{"garbage", "garbage", 0},
		{"suffix only", "K", 0},
		{"whitespace", "   ", 0},
		{"zero", "0", 0},
		{"decimal floor", "1.9K", 1900},
		{"sub-thousand decimal", "1.23K", 1230},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.in); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestCount_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Count("7.7M"); got != 7700000 {
			t.Fatalf("Count(%q) = %d on call %d, want 7700000", "7.7M", got, i+1)
		}
	}
}
