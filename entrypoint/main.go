package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"cognitionmetrics.com/idr/api"
	"cognitionmetrics.com/idr/logger"
	"cognitionmetrics.com/idr/pipeline"
	"cognitionmetrics.com/idr/worker"
)

type Config struct {
	POSModelPath  string `envconfig:"IDR_POS_MODEL_PATH" required:"true"`
	RuleSetPath   string `envconfig:"IDR_RULE_SET_PATH" default:""`
	RestAPIActive bool   `envconfig:"IDR_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"IDR_REST_API_PORT" default:"10000"`
	WorkerActive  bool   `envconfig:"IDR_WORKER_ACTIVE" default:"true"`
}

const pipelineStartMaxRetries = 5

func main() {
	logger.SetupLogging()
	idrLogger := logger.NewLogger("Main")
	fatalErrLogger := idrLogger.Fatal().Caller()
	filePath := flag.String("file", "", "rate a local transcript file and print the JSON result")
	speechMode := flag.Bool("speech", false, "apply the spoken-language rules to the input")
	flag.Parse()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	pipelineParams := pipeline.IdeaDensityParams{
		POSModelPath: config.POSModelPath,
		RuleSetPath:  config.RuleSetPath,
	}

	// rate a single local file and exit
	if *filePath != "" {
		text, err := os.ReadFile(*filePath)
		if err != nil {
			fatalErrLogger.Err(err).Msg("Failed to read input file")
			os.Exit(1)
		}
		ppln, err := pipeline.NewIdeaDensity(pipelineParams)
		if err != nil {
			fatalErrLogger.Err(err).Msg("Failed to start idea density pipeline")
			os.Exit(1)
		}
		response := <-ppln(pipeline.Request{
			Tid:        *filePath,
			Text:       string(text),
			SpeechMode: *speechMode,
		})
		fmt.Println(response)
		return
	}

	//Load Pipeline
	pipelineChannel := make(chan pipeline.Pipeline)
	go func() {
		for retry := 0; retry < pipelineStartMaxRetries; retry++ {
			ppln, err := pipeline.NewIdeaDensity(pipelineParams)
			if err != nil {
				idrLogger.Err(err).Msg("Failed to start idea density pipeline. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			idrLogger.Info().Msg("Pipeline loaded")
			pipelineChannel <- ppln
			return
		}
		fatalErrLogger.Msg("Could not start pipeline after 5 retries, exiting")
		os.Exit(1)
	}()

	// block until pipeline loads
	ppln := <-pipelineChannel

	if config.RestAPIActive {
		go func() {
			idrLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: ppln,
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			idrLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	if !config.WorkerActive {
		if !config.RestAPIActive {
			fatalErrLogger.Msg("Neither REST API nor worker is enabled, nothing to do")
			os.Exit(1)
		}
		select {}
	}

	idrLogger.Info().Msg("Start IDR Worker")
	for {
		rmqWorker, err := worker.New(ppln)
		if err != nil {
			idrLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			idrLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}
