package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/aptpod/viewmeasure-go/internal/retry"
)

func TestRetry_nextSleep(t *testing.T) {
	type args struct {
		count           int
		baseInterval    time.Duration
		maxBaseInterval time.Duration
	}
	tests := []struct {
		name string
		args args
		want time.Duration
	}{
		{name: "0", args: args{count: 0, baseInterval: 1, maxBaseInterval: 1000}, want: 1},
		{name: "1", args: args{count: 1, baseInterval: 1, maxBaseInterval: 1000}, want: 2},
		{name: "5", args: args{count: 5, baseInterval: 1, maxBaseInterval: 1000}, want: 32},
		{name: "capped", args: args{count: 100000, baseInterval: 1, maxBaseInterval: 1000}, want: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetRandFloat64(t, 0.5)
			assert.Equal(t, tt.want, NextSleep(tt.args.count, tt.args.baseInterval, tt.args.maxBaseInterval))
		})
	}
}

func TestRetry_Do(t *testing.T) {
	SetRandFloat64(t, 0.5)
	start := time.Now()
	var attempts []int
	err := Retry{BaseInterval: 10 * time.Millisecond}.Do(context.Background(), func(attempt int) error {
		attempts = append(attempts, attempt)
		if attempt == 2 {
			return nil
		}
		return errors.New("fail")
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, attempts)
	// 10ms + 20ms
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRetry_Do_MaxAttempt(t *testing.T) {
	errFail := errors.New("fail")
	var count int
	err := Retry{MaxAttempt: 3, BaseInterval: time.Millisecond}.Do(context.Background(), func(int) error {
		count++
		return errFail
	})
	assert.ErrorIs(t, err, errFail)
	assert.Equal(t, 3, count)
}

func TestRetry_Do_Permanent(t *testing.T) {
	errFail := errors.New("fail")
	var count int
	err := Retry{BaseInterval: time.Millisecond}.Do(context.Background(), func(int) error {
		count++
		return Permanent(errFail)
	})
	assert.Equal(t, errFail, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, Permanent(nil))
}

func TestRetry_Do_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := Do(ctx, func(int) error {
		return errors.New("fail")
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
