package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/mocks"
	"github.com/dtroode/idwallet-server/internal/model"
	"github.com/dtroode/idwallet-server/internal/repository/memory"
	"github.com/dtroode/idwallet-server/internal/testutil"
)

func TestSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	store := memory.NewVerificationRepository()

	create := func(createdAt time.Time, ttl time.Duration) model.VerificationCode {
		code, err := store.Create(ctx, model.VerificationCode{
			Code:      "123456",
			NaturalID: "S001",
			Kind:      model.KindStudent,
			Purpose:   model.PurposeRegistration,
			CreatedAt: createdAt,
			ExpiresAt: createdAt.Add(ttl),
		})
		require.NoError(t, err)
		return code
	}

	create(now.Add(-48*time.Hour), 10*time.Minute) // long expired
	create(now.Add(-time.Hour), 10*time.Minute)    // expired within retention
	create(now.Add(-time.Minute), 10*time.Minute)  // live

	sweeper := NewSweeper(store, time.Hour, 24*time.Hour, testutil.MakeNoopLogger())
	sweeper.now = func() time.Time { return now }

	assert.Equal(t, int64(1), sweeper.Sweep(ctx))
	assert.Equal(t, int64(0), sweeper.Sweep(ctx))

	_, err := store.Redeem(ctx, model.RedeemParams{
		NaturalID: "S001",
		Kind:      model.KindStudent,
		Purpose:   model.PurposeRegistration,
		Code:      "123456",
	}, now)
	require.NoError(t, err)
}

func TestSweeper_StoreError(t *testing.T) {
	store := mocks.NewVerificationCodeStore(t)
	store.On("DeleteExpired", context.Background(), time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)).
		Return(int64(0), errors.New("locked")).Once()

	sweeper := NewSweeper(store, time.Hour, 24*time.Hour, testutil.MakeNoopLogger())
	sweeper.now = func() time.Time { return time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC) }

	assert.Equal(t, int64(0), sweeper.Sweep(context.Background()))
}

func TestSweeper_LogsComponent(t *testing.T) {
	store := mocks.NewVerificationCodeStore(t)
	store.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(2), nil).Once()

	var buf bytes.Buffer
	sweeper := NewSweeper(store, time.Hour, 24*time.Hour, logger.NewWithWriter(&buf, 0))

	assert.Equal(t, int64(2), sweeper.Sweep(context.Background()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sweeper", entry["component"])
	assert.Equal(t, float64(2), entry["count"])
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	store := mocks.NewVerificationCodeStore(t)
	store.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil).Maybe()

	sweeper := NewSweeper(store, 5*time.Millisecond, time.Hour, testutil.MakeNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeper_DisabledInterval(t *testing.T) {
	sweeper := NewSweeper(mocks.NewVerificationCodeStore(t), 0, time.Hour, testutil.MakeNoopLogger())

	sweeper.Run(context.Background())
}
