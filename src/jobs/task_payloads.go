package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeRemoveUpload = "upload:remove"

// RemoveUploadPayload อ้างอิงไฟล์ที่ต้องลบ (URL หรือ path ที่เก็บไว้ใน document)
type RemoveUploadPayload struct {
	Ref string `json:"ref"`
}

func NewRemoveUploadTask(ref string) (*asynq.Task, error) {
	payload, err := json.Marshal(RemoveUploadPayload{Ref: ref})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRemoveUpload, payload, asynq.MaxRetry(3)), nil
}
