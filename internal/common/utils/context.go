package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCommandTimeout はCLIのコマンドが制限時間内に終わらなかったことを表します
var ErrCommandTimeout = errors.New("command timed out")

// RunWithTimeout は fn を timeout 以内で実行します
// 制限時間を過ぎるか呼び出し元がキャンセルした場合は fn の終了を待たずに戻ります
// timeout が0以下の場合は制限しません
func RunWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %v", ErrCommandTimeout, timeout)
		}
		return fmt.Errorf("command canceled: %w", ctx.Err())
	}
}
