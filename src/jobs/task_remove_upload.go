package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// FileRemover deletes a stored upload by its reference.
type FileRemover interface {
	Remove(ctx context.Context, ref string) error
}

// HandleRemoveUploadTask returns the asynq handler for TypeRemoveUpload.
func HandleRemoveUploadTask(files FileRemover, log *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RemoveUploadPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.Error("❌ Payload decode error", zap.Error(err))
			// payload เสีย retry ไปก็ไม่หาย
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if payload.Ref == "" {
			return nil
		}
		if err := files.Remove(ctx, payload.Ref); err != nil {
			log.Error("❌ Failed to remove upload", zap.String("ref", payload.Ref), zap.Error(err))
			return err
		}
		log.Info("✅ Upload removed", zap.String("ref", payload.Ref))
		return nil
	}
}

// Cleaner ลบไฟล์เก่าแบบ background ผ่าน asynq; without a client the file is
// removed inline.
type Cleaner struct {
	client *asynq.Client
	files  FileRemover
	log    *zap.Logger
}

func NewCleaner(client *asynq.Client, files FileRemover, log *zap.Logger) *Cleaner {
	return &Cleaner{client: client, files: files, log: log}
}

// Discard schedules removal of ref. Failures are logged, never returned: a
// stale file must not fail the request that replaced it.
func (c *Cleaner) Discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if c.client != nil {
		task, err := NewRemoveUploadTask(ref)
		if err == nil {
			if _, err = c.client.EnqueueContext(ctx, task); err == nil {
				return
			}
		}
		c.log.Warn("⚠️ enqueue upload removal failed, removing inline", zap.String("ref", ref), zap.Error(err))
	}
	if err := c.files.Remove(ctx, ref); err != nil {
		c.log.Warn("⚠️ remove upload failed", zap.String("ref", ref), zap.Error(err))
	}
}
