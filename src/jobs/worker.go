package jobs

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RegisterHandlers ลงทะเบียน Handler ทั้งหมดของ background jobs
func RegisterHandlers(mux *asynq.ServeMux, files FileRemover, log *zap.Logger) {
	mux.HandleFunc(TypeRemoveUpload, HandleRemoveUploadTask(files, log))
}

// NewWorker builds the asynq server and its mux. Call Start on the server
// and Shutdown on exit.
func NewWorker(opt asynq.RedisClientOpt, files FileRemover, log *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{"default": 1},
		Logger:      log.Sugar(),
	})
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, files, log)
	return srv, mux
}
