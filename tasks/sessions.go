package tasks

import (
	"sync"

	"cognitionmetrics.com/idr/redis"
)

const SessionsDB redis.DB = 0

type SessionTask struct {
	SessionInfo       map[string]interface{} `json:"session_info"`
	FailedTasks       []string               `json:"failed_tasks"`
	FailedTranscripts map[string][]string    `json:"failed_transcripts"`
	BatchID           string                 `json:"batch_id"`
	WorkType          string                 `json:"work_type"`
}

// SessionTaskCached is the projection other services read instead of the full
// session document. Updates keep it in sync with the main document.
type SessionTaskCached struct {
	SessionInfo map[string]interface{} `json:"session_info"`
	FailedTasks []string               `json:"failed_tasks"`
	BatchID     string                 `json:"batch_id"`
	WorkType    string                 `json:"work_type"`
}

type SessionTasks struct {
	client redis.Client
}

func (tasks SessionTasks) Get(redisKey string) (*SessionTask, error) {
	var task SessionTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks SessionTasks) GetCached(redisKey string) (*SessionTaskCached, error) {
	var task SessionTaskCached
	err := tasks.client.GetDocument(cachedPropertiesKey(redisKey), &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks SessionTasks) Update(redisKey string, updateFunc func(task *SessionTask)) (err error) {
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
	var task SessionTask
	err = tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return err
	}
	updateFunc(&task)
	cached := SessionTaskCached{
		SessionInfo: task.SessionInfo,
		FailedTasks: task.FailedTasks,
		BatchID:     task.BatchID,
		WorkType:    task.WorkType,
	}
	errChan := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		errChan <- tasks.client.SaveDocument(redisKey, &task)
		wg.Done()
	}()
	go func() {
		errChan <- tasks.client.SaveDocument(cachedPropertiesKey(redisKey), &cached)
		wg.Done()
	}()
	wg.Wait()
	close(errChan)
	for err = range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}
