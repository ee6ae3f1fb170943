package types

import "encoding/json"

// Kind discriminators carried in the "msg" field of every frame sent to a
// queued client.
const (
	KindSendData         = "send_data"
	KindProcessStarts    = "process_starts"
	KindProcessCompleted = "process_completed"
	KindEstimation       = "estimation"
)

// Message is the closed set of frames the dispatcher emits. Each variant
// carries its kind discriminator in the Msg field so clients can switch on it.
type Message interface {
	MessageKind() string
}

// DataRequest asks the client to send its input payload.
type DataRequest struct {
	Msg string `json:"msg"`
}

func NewDataRequest() DataRequest { return DataRequest{Msg: KindSendData} }

func (DataRequest) MessageKind() string { return KindSendData }

// ProcessStarts tells the client its job has been admitted into a slot.
type ProcessStarts struct {
	Msg string `json:"msg"`
}

func NewProcessStarts() ProcessStarts { return ProcessStarts{Msg: KindProcessStarts} }

func (ProcessStarts) MessageKind() string { return KindProcessStarts }

// ProcessCompleted delivers the backend result, or the failure, for a job.
// Success distinguishes a backend error from a normal completion; the client
// is actively waiting either way.
type ProcessCompleted struct {
	Msg     string          `json:"msg"`
	Success bool            `json:"success"`
	Output  json.RawMessage `json:"output,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func NewProcessCompleted(output json.RawMessage) ProcessCompleted {
	return ProcessCompleted{Msg: KindProcessCompleted, Success: true, Output: output}
}

func NewProcessFailed(reason string) ProcessCompleted {
	return ProcessCompleted{Msg: KindProcessCompleted, Success: false, Error: reason}
}

func (ProcessCompleted) MessageKind() string { return KindProcessCompleted }

// Estimation reports the current queue length and expected wait in seconds
// to a pending client.
type Estimation struct {
	Msg           string  `json:"msg"`
	QueueSize     int     `json:"queue_size"`
	QueueDuration float64 `json:"queue_duration"`
}

func NewEstimation(queueSize int, eta float64) Estimation {
	return Estimation{Msg: KindEstimation, QueueSize: queueSize, QueueDuration: eta}
}

func (Estimation) MessageKind() string { return KindEstimation }
