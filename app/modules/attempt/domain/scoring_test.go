package attemptdomain

import (
	"errors"
	"testing"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

func TestReward(t *testing.T) {
	tests := []struct {
		name          string
		attemptNumber int
		wasCorrect    bool
		wantPoints    sharedtypes.Points
		wantErr       error
	}{
		{name: "first attempt correct", attemptNumber: 1, wasCorrect: true, wantPoints: 30},
		{name: "second attempt correct", attemptNumber: 2, wasCorrect: true, wantPoints: 28},
		{name: "fifth attempt correct", attemptNumber: 5, wasCorrect: true, wantPoints: 22},
		{name: "last attempt correct", attemptNumber: 10, wasCorrect: true, wantPoints: 12},
		{name: "incorrect earns nothing", attemptNumber: 3, wasCorrect: false, wantPoints: 0},
		{name: "incorrect on last attempt earns nothing", attemptNumber: 10, wasCorrect: false, wantPoints: 0},
		{name: "attempt zero rejected", attemptNumber: 0, wasCorrect: true, wantErr: ErrInvalidAttemptNumber},
		{name: "attempt eleven rejected", attemptNumber: 11, wasCorrect: true, wantErr: ErrInvalidAttemptNumber},
		{name: "negative attempt rejected", attemptNumber: -1, wasCorrect: false, wantErr: ErrInvalidAttemptNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reward(tt.attemptNumber, tt.wasCorrect)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Points != tt.wantPoints {
				t.Errorf("points = %d, want %d", got.Points, tt.wantPoints)
			}
			if sharedtypes.Exp(got.Points) != got.Exp {
				t.Errorf("exp %d must equal points %d", got.Exp, got.Points)
			}
		})
	}
}

func TestReward_NonIncreasing(t *testing.T) {
	prev := sharedtypes.Points(BaseScore + 1)
	for n := 1; n <= MaxAttempts; n++ {
		r, err := Reward(n, true)
		if err != nil {
			t.Fatalf("attempt %d: %v", n, err)
		}
		if r.Points > prev {
			t.Fatalf("reward increased at attempt %d: %d > %d", n, r.Points, prev)
		}
		prev = r.Points
	}
}

func TestPotentialScore(t *testing.T) {
	tests := []struct {
		name          string
		attemptNumber int
		hintsUsed     int
		imageCount    int
		want          sharedtypes.Points
		wantErr       error
	}{
		{name: "first attempt no hints", attemptNumber: 1, hintsUsed: 0, imageCount: 3, want: 30},
		{name: "two hints on three images", attemptNumber: 1, hintsUsed: 2, imageCount: 3, want: 22},
		{name: "last attempt no hints floors at 12", attemptNumber: 10, hintsUsed: 0, imageCount: 3, want: 12},
		{name: "last attempt all hints two images floors at zero", attemptNumber: 10, hintsUsed: 3, imageCount: 2, want: 0},
		{name: "one hint on two images", attemptNumber: 1, hintsUsed: 1, imageCount: 2, want: 24},
		{name: "one hint on single image", attemptNumber: 1, hintsUsed: 1, imageCount: 1, want: 22},
		{name: "attempt out of range", attemptNumber: 11, hintsUsed: 0, imageCount: 3, wantErr: ErrInvalidAttemptNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PotentialScore(tt.attemptNumber, tt.hintsUsed, tt.imageCount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("potential score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPotentialScore_MonotoneInHints(t *testing.T) {
	for _, imageCount := range []int{1, 2, 3} {
		for attempt := 1; attempt <= MaxAttempts; attempt++ {
			prev, err := PotentialScore(attempt, 0, imageCount)
			if err != nil {
				t.Fatal(err)
			}
			for hints := 1; hints <= imageCount; hints++ {
				got, err := PotentialScore(attempt, hints, imageCount)
				if err != nil {
					t.Fatal(err)
				}
				if got < 0 {
					t.Fatalf("negative score: attempt=%d hints=%d images=%d", attempt, hints, imageCount)
				}
				if got > prev {
					t.Fatalf("score increased with hints: attempt=%d hints=%d images=%d", attempt, hints, imageCount)
				}
				prev = got
			}
		}
	}
}

func TestHintPenalty(t *testing.T) {
	tests := []struct {
		imageCount int
		want       int
	}{
		{imageCount: 1, want: 8},
		{imageCount: 2, want: 6},
		{imageCount: 3, want: 4},
		{imageCount: 4, want: 4},
	}
	for _, tt := range tests {
		if got := HintPenalty(tt.imageCount); got != tt.want {
			t.Errorf("HintPenalty(%d) = %d, want %d", tt.imageCount, got, tt.want)
		}
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Statue of Liberty", want: "statue of liberty"},
		{in: "  statue   OF\tliberty  ", want: "statue of liberty"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}
	for _, tt := range tests {
		if got := NormalizeAnswer(tt.in); got != tt.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
