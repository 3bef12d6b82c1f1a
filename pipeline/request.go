package pipeline

// Request is one rating job. Tid is the transaction id carried through logs.
type Request struct {
	Text       string `json:"redis_key"`
	Tid        string `json:"tid"`
	SpeechMode bool   `json:"speech_mode"`
}

// Pipeline runs a request and delivers the JSON response on the returned
// channel.
type Pipeline func(request Request) <-chan string
