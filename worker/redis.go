package worker

import (
	"fmt"

	"cognitionmetrics.com/idr/tasks"
)

type redisTransactions interface {
	getTranscriptTask(redisKey string) (*tasks.TranscriptTask, error)
	getBatchTask(task *Task) (*tasks.BatchTask, error)
	getSessionTask(task *Task) (*tasks.SessionTaskCached, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	err := wrapper.tasksClient.Transcripts.Update(task.redisKey, func(task *tasks.TranscriptTask) {
		task.TaskStatuses.IDR.Status = tasks.TaskStatusStarted
		task.TaskStatuses.IDR.Attempts += 1
		task.TaskStatuses.IDR.StartedAt = getFormattedNow()
		task.TaskStatuses.IDR.CompletedAt = nil
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	err := wrapper.tasksClient.Transcripts.Update(task.redisKey, func(transcriptTask *tasks.TranscriptTask) {
		transcriptTask.TaskStatuses.IDR.Status = tasks.TaskStatusCanceled
		transcriptTask.TaskStatuses.IDR.StartedAt = getFormattedNow()
		transcriptTask.TaskStatuses.IDR.CompletedAt = getFormattedNow()
		transcriptTask.TaskStatuses.IDR.Attempts += 1
		transcriptTask.TaskStatuses.IDR.ErrorMessages = append(
			transcriptTask.TaskStatuses.IDR.ErrorMessages,
			errorMessages...,
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	err := wrapper.tasksClient.Sessions.Update(task.transcriptTask.SessionID, func(sessionTask *tasks.SessionTask) {
		sessionTask.FailedTasks = append(sessionTask.FailedTasks, "idr")
		if sessionTask.FailedTranscripts == nil {
			sessionTask.FailedTranscripts = map[string][]string{}
		}
		sessionTask.FailedTranscripts[task.redisKey] = append(sessionTask.FailedTranscripts[task.redisKey], "idr")
	})
	if err != nil {
		return err
	}
	err = wrapper.tasksClient.Transcripts.Update(task.redisKey, func(transcriptTask *tasks.TranscriptTask) {
		transcriptTask.TaskStatuses.IDR.Status = tasks.TaskStatusCompletedFailure
		transcriptTask.TaskStatuses.IDR.StartedAt = getFormattedNow()
		transcriptTask.TaskStatuses.IDR.CompletedAt = getFormattedNow()
		transcriptTask.TaskStatuses.IDR.Attempts += 1
		transcriptTask.TaskStatuses.IDR.ErrorMessages = append(
			transcriptTask.TaskStatuses.IDR.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				transcriptTask.TaskStatuses.IDR.Attempts,
				maxRetries,
			),
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Transcripts.Update(task.redisKey, func(transcriptTask *tasks.TranscriptTask) {
		transcriptTask.TaskStatuses.IDR.Status = tasks.TaskStatusFailed
		transcriptTask.TaskStatuses.IDR.CompletedAt = getFormattedNow()
		transcriptTask.TaskStatuses.IDR.ErrorMessages = append(transcriptTask.TaskStatuses.IDR.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Transcripts.Update(task.redisKey, func(transcriptTask *tasks.TranscriptTask) {
		if !transcriptTask.TaskStatuses.IDR.Status.Complete() {
			transcriptTask.TaskStatuses.IDR.Status = tasks.TaskStatusCompletedSuccess
		}
		transcriptTask.TaskStatuses.IDR.CompletedAt = getFormattedNow()
		transcriptTask.TaskStatuses.IDR.ResultsFileKey = getResultsFileKey(task)
	})
}

func (wrapper *redisClientWrapper) getTranscriptTask(redisKey string) (*tasks.TranscriptTask, error) {
	return wrapper.tasksClient.Transcripts.Get(redisKey)
}

func (wrapper *redisClientWrapper) getBatchTask(task *Task) (*tasks.BatchTask, error) {
	return wrapper.tasksClient.Batches.GetCached(task.transcriptTask.BatchID)
}

func (wrapper *redisClientWrapper) getSessionTask(task *Task) (*tasks.SessionTaskCached, error) {
	return wrapper.tasksClient.Sessions.GetCached(task.transcriptTask.SessionID)
}
