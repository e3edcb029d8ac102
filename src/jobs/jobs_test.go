package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingRemover struct {
	removed []string
	err     error
}

func (r *recordingRemover) Remove(_ context.Context, ref string) error {
	r.removed = append(r.removed, ref)
	return r.err
}

func TestNewRemoveUploadTask(t *testing.T) {
	task, err := NewRemoveUploadTask("/uploads/badges/1-a.png")
	require.NoError(t, err)
	assert.Equal(t, TypeRemoveUpload, task.Type())

	var payload RemoveUploadPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "/uploads/badges/1-a.png", payload.Ref)
}

func TestHandleRemoveUploadTask(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the referenced file", func(t *testing.T) {
		files := &recordingRemover{}
		task, _ := NewRemoveUploadTask("/uploads/students/x.jpg")
		require.NoError(t, HandleRemoveUploadTask(files, zap.NewNop())(ctx, task))
		assert.Equal(t, []string{"/uploads/students/x.jpg"}, files.removed)
	})

	t.Run("bad payload is not retried", func(t *testing.T) {
		files := &recordingRemover{}
		err := HandleRemoveUploadTask(files, zap.NewNop())(ctx, asynq.NewTask(TypeRemoveUpload, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
		assert.Empty(t, files.removed)
	})

	t.Run("remove failure is returned for retry", func(t *testing.T) {
		files := &recordingRemover{err: errors.New("disk busy")}
		task, _ := NewRemoveUploadTask("/uploads/students/x.jpg")
		assert.Error(t, HandleRemoveUploadTask(files, zap.NewNop())(ctx, task))
	})
}

func TestCleanerWithoutQueueRemovesInline(t *testing.T) {
	files := &recordingRemover{}
	c := NewCleaner(nil, files, zap.NewNop())

	c.Discard(context.Background(), "")
	c.Discard(context.Background(), "/uploads/badges/old.png")
	assert.Equal(t, []string{"/uploads/badges/old.png"}, files.removed)

	files.err = errors.New("gone")
	assert.NotPanics(t, func() { c.Discard(context.Background(), "/uploads/badges/other.png") })
}
