package tasks

import (
	"cognitionmetrics.com/idr/redis"
)

const TranscriptsDB redis.DB = 2

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

type TranscriptTask struct {
	SessionID    string                 `json:"session_id"`
	BatchID      string                 `json:"batch_id"`
	TextFileKey  string                 `json:"text_file_key"`
	SpeechMode   bool                   `json:"speech_mode"`
	TaskStatuses TranscriptTaskStatuses `json:"task_statuses"`
}

type TranscriptTaskStatuses struct {
	IDR TranscriptTaskInfo `json:"idr"`
}

type TranscriptTaskInfo struct {
	ResultsFileKey string     `json:"results_file_key"`
	StartedAt      *string    `json:"started_at"`
	CompletedAt    *string    `json:"completed_at"`
	Attempts       int        `json:"attempts"`
	Status         TaskStatus `json:"status"`
	ErrorMessages  []string   `json:"error_messages"`
}

type TranscriptTasks struct {
	client redis.Client
}

func (tasks TranscriptTasks) Get(redisKey string) (*TranscriptTask, error) {
	var task TranscriptTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks TranscriptTasks) Update(redisKey string, updateFunc func(task *TranscriptTask)) (err error) {
	releaseLock, err := tasks.client.Lock(redisKey)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = releaseLock()
			return
		}
		err = releaseLock()
	}()
	var task TranscriptTask
	err = tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return err
	}
	updateFunc(&task)
	return tasks.client.SaveDocument(redisKey, &task)
}
