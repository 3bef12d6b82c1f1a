package tasks

import (
	"fmt"

	"cognitionmetrics.com/idr/redis"
)

type Client struct {
	Sessions    SessionTasks
	Transcripts TranscriptTasks
	Batches     BatchTasks
}

// NewClient is a preferred way for working with task documents
func NewClient() (Client, error) {
	sessionsRedisClient, err := redis.NewClient(SessionsDB)
	if err != nil {
		return Client{}, err
	}
	batchesRedisClient, err := redis.NewClient(BatchesDB)
	if err != nil {
		return Client{}, err
	}
	transcriptsRedisClient, err := redis.NewClient(TranscriptsDB)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Sessions:    SessionTasks{client: sessionsRedisClient},
		Batches:     BatchTasks{client: batchesRedisClient},
		Transcripts: TranscriptTasks{client: transcriptsRedisClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Transcripts.client.Close()
	_ = client.Sessions.client.Close()
	_ = client.Batches.client.Close()
}

func cachedPropertiesKey(redisKey string) string {
	return fmt.Sprintf("%s-cached-properties", redisKey)
}
