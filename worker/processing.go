package worker

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"cognitionmetrics.com/idr/pipeline"
	"cognitionmetrics.com/idr/tasks"
	"cognitionmetrics.com/idr/utils"
)

type Message struct {
	WorkType string `json:"work_type"`
	RedisKey string `json:"redis_key"`
	Sender   string `json:"sender"`
	Version  string `json:"version"`
}

// resultsFile wraps the pipeline response. The content hash of the input text
// lets downstream consumers detect re-deliveries of unchanged transcripts.
type resultsFile struct {
	ContentHash string          `json:"content_hash"`
	Results     json.RawMessage `json:"results"`
}

type Task struct {
	delivery       *amqp.Delivery
	transcriptTask *tasks.TranscriptTask
	message        *Message
	redisKey       string
	idrLogger      *zerolog.Logger
}

func (worker *Worker) processMessage(delivery *amqp.Delivery) {
	task, err := worker.createTask(delivery)
	rejectLogger := worker.idrLogger.With().Str("message_id", delivery.MessageId).Logger()
	if err != nil {
		worker.idrLogger.Err(err).
			Str("message_id", delivery.MessageId).
			Str("tid", string(delivery.Body)).
			Msg("Failed to create task for delivery")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.processTask(task); err != nil {
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.pingSequencer(task, *task.message); err != nil {
		task.idrLogger.Err(err).Msg("Got error while sending message to sequencer queue")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.acknowledgeDelivery(delivery); err != nil {
		task.idrLogger.Err(err).Msg("Failed to acknowledge delivery")
	}
	task.idrLogger.Info().Msg("Finished processing RMQ message")
}

func (worker *Worker) createTask(delivery *amqp.Delivery) (*Task, error) {
	var message Message
	err := json.Unmarshal(delivery.Body, &message)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal message, got error %w", err)
	}
	transcriptTask, err := worker.redis.getTranscriptTask(message.RedisKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript task for message, got error %w", err)
	}
	taskLogger := worker.idrLogger.With().Str("tid", message.RedisKey).Logger()
	task := Task{
		delivery:       delivery,
		transcriptTask: transcriptTask,
		redisKey:       message.RedisKey,
		message:        &message,
		idrLogger:      &taskLogger,
	}
	return &task, nil
}

func (worker *Worker) processTask(task *Task) error {
	shouldPerform, err := worker.shouldPerformTask(task)
	if err != nil {
		task.idrLogger.Err(err).
			Msg("Got error while trying to decide whether to run task")
		return err
	}
	if !shouldPerform {
		return nil
	}
	if err = worker.redis.onTaskStarted(task); err != nil {
		task.idrLogger.Err(err).Msg("Failed to update task info")
		return fmt.Errorf("failed to update task info: %w", err)
	}
	if err = worker.runPipeline(task); err != nil {
		task.idrLogger.Err(err).Msg("Got error while running pipeline")
		if err = worker.redis.onTaskFailedWithError(task, err); err != nil {
			return err
		}
		return nil
	}
	task.idrLogger.Info().Msg("Saved results, marking task as complete")
	if err = worker.redis.onTaskComplete(task); err != nil {
		task.idrLogger.Err(err).Msg("Got error while trying to mark task as complete")
		return err
	}
	return nil
}

func (worker *Worker) runPipeline(task *Task) (err error) {
	defer utils.RecoverWithError(&err)
	task.idrLogger.Info().Msgf("Processing message from RMQ, attempt # %d", task.transcriptTask.TaskStatuses.IDR.Attempts)
	data, err := worker.s3.getTranscriptText(task)
	if err != nil {
		task.idrLogger.Err(err).Caller().Msg("Could not fetch transcript text from s3")
		return fmt.Errorf("failed fetch data from s3: %w", err)
	}
	text := string(data)
	request := pipeline.Request{
		Tid:        task.redisKey,
		Text:       text,
		SpeechMode: task.transcriptTask.SpeechMode,
	}
	result, ok := <-worker.ppln(request)
	if !ok {
		task.idrLogger.Error().Msg("Pipeline channel was closed before returning anything")
		return errors.New("pipeline channel was closed before returning anything")
	}
	results := json.RawMessage(result)
	if len(results) == 0 {
		results = json.RawMessage("null")
	}
	envelope, err := json.Marshal(resultsFile{
		ContentHash: fmt.Sprintf("%016x", utils.HashString(text)),
		Results:     results,
	})
	if err != nil {
		return err
	}
	task.idrLogger.Info().Msg("Finished pipeline, saving results to s3")
	if err = worker.s3.saveResultsFile(task, string(envelope)); err != nil {
		task.idrLogger.Err(err).Msg("Got error while trying to save results")
		return err
	}
	return nil
}

func (worker *Worker) shouldPerformTask(task *Task) (bool, error) {
	taskInfo := task.transcriptTask.TaskStatuses.IDR
	taskLogger := task.idrLogger

	if taskInfo.Status.Complete() {
		taskLogger.Info().Msg("Task is already done. (might indicate issue acking message with RMQ). Sending back to Sequencer.")
		return false, nil
	}
	batchTask, err := worker.redis.getBatchTask(task)
	if err != nil {
		taskLogger.Err(err).Msg("Failed to query batch task for transcript task")
		return false, err
	}
	if batchTask.UserCanceled {
		taskLogger.Info().Msg("Batch was canceled, no need to perform this task. Sending back to Sequencer.")
		err := worker.redis.onTaskCancelled(task)
		return false, err
	}
	var sessionTask *tasks.SessionTaskCached
	if batchTask.StopSessionsOnFailure {
		sessionTask, err = worker.redis.getSessionTask(task)
		if err != nil {
			return false, err
		}
		if sessionTask == nil {
			return false, fmt.Errorf("session task not found")
		}
	}
	if batchTask.StopSessionsOnFailure && len(sessionTask.FailedTasks) > 0 {
		failedTask := sessionTask.FailedTasks[0]
		taskLogger.Info().Msgf("Task is not required because the \"%s\" already completed failure "+
			"and session won't be processed successfully. Sending back to Sequencer.", failedTask)
		err := worker.redis.onTaskCancelled(
			task,
			fmt.Sprintf(
				"Task was marked as \"%s\" because of the current session has failed "+
					"in the \"%s\" worker and won't be processed successfully.",
				tasks.TaskStatusCanceled,
				failedTask,
			),
		)
		return false, err
	}
	if taskInfo.Attempts >= worker.config.TaskMaxRetries {
		taskLogger.Info().Msg("IDR task has exceeded retries. Sending back to Sequencer.")
		err = worker.redis.onTaskExceededRetries(task, worker.config.TaskMaxRetries)
		return false, err
	}
	return true, nil
}
