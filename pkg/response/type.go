package response

import (
	"encoding/json"
	"time"
)

// Resp is the JSON body every HTTP endpoint answers with, success or not.
// ErrorCode 0 means success; Data carries the payload, Errors the per-field
// validation details when present.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Errors    any    `json:"errors,omitempty"`
}

// Date marshals as DateFormat, the same day notation users see in chat.
type Date time.Time

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Local().Format(DateFormat))
}

// DateTime marshals as DateTimeFormat.
type DateTime time.Time

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Local().Format(DateTimeFormat))
}
