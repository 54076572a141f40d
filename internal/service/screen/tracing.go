package screen

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-xray-sdk-go/xray"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// beginSubsegment は親セグメントがある場合のみ画面操作のサブセグメントを開始します
// トレース無効時は nil を返すので closeSegment で閉じてください
func beginSubsegment(ctx context.Context, name string) (context.Context, *xray.Segment) {
	if xray.GetSegment(ctx) == nil {
		return ctx, nil
	}
	return xray.BeginSubsegment(ctx, name)
}

// closeSegment はサブセグメントを閉じます
// ログイン画面への遷移と入力エラーは想定内の結果なので outcome として記録し、エラーにはしません
func closeSegment(seg *xray.Segment, err error) {
	if seg == nil {
		return
	}

	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		addMetadata(seg, "outcome", "redirected_to_login")
		err = nil
	case errors.As(err, &validationErr):
		addMetadata(seg, "outcome", "validation_failed")
		addMetadata(seg, "validation", validationErr.Title)
		err = nil
	}
	seg.Close(err)
}

func addMetadata(seg *xray.Segment, key string, value interface{}) {
	if seg == nil {
		return
	}
	if err := seg.AddMetadata(key, value); err != nil {
		log.Printf("Failed to add %s metadata: %v", key, err)
	}
}

// addSessionMetadata はセッションの管理者フラグを記録します
func addSessionMetadata(seg *xray.Segment, s model.Session) {
	addMetadata(seg, "is_admin", s.IsAdmin)
}
