package tasks

import (
	"cognitionmetrics.com/idr/redis"
)

const BatchesDB redis.DB = 1

type BatchTask struct {
	UserCanceled          bool `json:"user_canceled"`
	StopSessionsOnFailure bool `json:"stop_sessions_on_failure"`
}

type BatchTasks struct {
	client redis.Client
}

func (tasks BatchTasks) GetCached(redisKey string) (*BatchTask, error) {
	var task BatchTask
	key := cachedPropertiesKey(redisKey)
	err := tasks.client.GetDocument(key, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
