package challengeservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/observability"
	"github.com/piclink-games/piclink-backend/app/shared/observability/metrics"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

type challengeFixture struct {
	svc         *ChallengeService
	repo        *FakeChallengeRepository
	credits     *FakeCredits
	profiles    *FakeProfiles
	coordinator *FakeCoordinator
}

func newTestService(t *testing.T) *challengeFixture {
	t.Helper()
	f := &challengeFixture{
		repo:        NewFakeChallengeRepository(),
		credits:     &FakeCredits{},
		profiles:    &FakeProfiles{},
		coordinator: &FakeCoordinator{},
	}
	f.svc = NewChallengeService(
		f.repo,
		f.credits,
		f.profiles,
		f.coordinator,
		observability.NoOpLogger,
		&metrics.NoOpChallengeMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
		0,
		0,
	)
	f.svc.retryPolicy = retry.NoDelayPolicy()
	return f
}

func threeImages() []challengedb.ChallengeImage {
	return []challengedb.ChallengeImage{
		{URL: "https://img.example/a", Description: "a"},
		{URL: "https://img.example/b", Description: "b"},
		{URL: "https://img.example/c", Description: "c"},
	}
}

func TestCreateChallenge_PaysCreationBonus(t *testing.T) {
	f := newTestService(t)

	result, err := f.svc.CreateChallenge(context.Background(), "creator-1", threeImages(), "hidden link")
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	got := *result.Success
	require.NotNil(t, got.Challenge)
	assert.NotEmpty(t, got.Challenge.ID)
	assert.Equal(t, sharedtypes.UserID("creator-1"), got.Challenge.CreatorID)
	assert.Equal(t, 30, got.Challenge.BaseMaxScore)
	assert.Equal(t, 4, got.Challenge.HintDeduction)
	assert.Equal(t, sharedtypes.Points(10), got.BonusPoints)
	assert.Equal(t, sharedtypes.Exp(10), got.BonusExp)

	require.Len(t, f.credits.Calls, 1)
	assert.Equal(t, sharedtypes.Points(10), f.credits.Calls[0].Points)

	require.Len(t, f.coordinator.Calls, 1)
	assert.Equal(t, sharedtypes.Points(10), f.coordinator.Calls[0].Delta)
}

func TestCreateChallenge_TwoImageHintDeduction(t *testing.T) {
	f := newTestService(t)

	result, err := f.svc.CreateChallenge(context.Background(), "creator-1", threeImages()[:2], "hidden link")
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.Equal(t, 6, result.Success.Challenge.HintDeduction)
}

func TestCreateChallenge_Validation(t *testing.T) {
	tests := []struct {
		name    string
		images  []challengedb.ChallengeImage
		answer  string
		wantErr error
	}{
		{name: "no images", images: nil, answer: "x", wantErr: ErrNoImages},
		{name: "too many images", images: append(threeImages(), challengedb.ChallengeImage{URL: "d"}), answer: "x", wantErr: ErrTooManyImages},
		{name: "blank answer", images: threeImages(), answer: "   ", wantErr: ErrEmptyAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestService(t)
			result, err := f.svc.CreateChallenge(context.Background(), "creator-1", tt.images, tt.answer)
			require.NoError(t, err)
			require.True(t, result.IsFailure())
			assert.ErrorIs(t, *result.Failure, tt.wantErr)
			assert.Empty(t, f.credits.Calls)
		})
	}
}
