package chat

import (
	"encoding/json"
	"errors"
)

var (
	errInvalidJSON    = errors.New("invalid JSON")
	errUnknownType    = errors.New("unknown message type")
	errMissingImage   = errors.New("image message without image data")
	errImagesDisabled = errors.New("image messages are not enabled")
)

// errorFrame renders err as {"type":"error","error":...}.
func errorFrame(err error) []byte {
	b, _ := json.Marshal(map[string]string{"type": TypeError, "error": err.Error()})
	return b
}
