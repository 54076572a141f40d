package repository

import (
	"context"
	"log"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// beginSubsegment は親セグメントがある場合のみサブセグメントを開始します
// トレース無効時やテストでは nil を返すので closeSegment で閉じてください
func beginSubsegment(ctx context.Context, name string) (context.Context, *xray.Segment) {
	if xray.GetSegment(ctx) == nil {
		return ctx, nil
	}
	return xray.BeginSubsegment(ctx, name)
}

func closeSegment(seg *xray.Segment, err error) {
	if seg != nil {
		seg.Close(err)
	}
}

func addMetadata(seg *xray.Segment, key string, value interface{}) {
	if seg == nil {
		return
	}
	if err := seg.AddMetadata(key, value); err != nil {
		log.Printf("Failed to add %s metadata: %v", key, err)
	}
}
