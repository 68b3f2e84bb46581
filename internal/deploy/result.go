package deploy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Fallback messages for bodies that are not a JSON object.
const (
	MessageNonJSON     = "Non-JSON error"
	MessageUnknown     = "Unknown error"
	ContentUnavailable = "No response body available"
)

// Result is the normalized outcome of an upload.
//
// StatusCode is the HTTP status observed on the wire. Code is the business
// code used for classification: the body's code when the body parsed, the
// transport status otherwise. The two may legitimately differ.
type Result struct {
	StatusCode int
	Code       int
	Message    string
	Content    string
	// Parsed reports whether Code, Message and Content came from a JSON body.
	Parsed bool
}

// Succeeded reports whether the business code is in the 2xx range.
func (r Result) Succeeded() bool {
	return r.Code >= 200 && r.Code < 300
}

// Summary renders the triple the way it is reported to the CI host.
func (r Result) Summary() string {
	return fmt.Sprintf("Code: %d | Message: %s | Content: %s", r.Code, r.Message, r.Content)
}

type responseBody struct {
	Code    json.Number     `json:"code"`
	Message json.RawMessage `json:"message"`
	Content json.RawMessage `json:"content"`
}

// Normalize turns a status code and body into a Result. readErr is the error,
// if any, from reading the body; an unreadable body counts as empty.
func Normalize(status int, body []byte, readErr error) Result {
	if readErr == nil {
		if parsed, ok := parseBody(body); ok {
			parsed.StatusCode = status
			return parsed
		}
	}
	text := string(body)
	if readErr != nil || text == "" {
		return Result{StatusCode: status, Code: status, Message: MessageUnknown, Content: ContentUnavailable}
	}
	return Result{StatusCode: status, Code: status, Message: MessageNonJSON, Content: text}
}

// parseBody accepts a JSON object only. Missing fields keep their zero value;
// a non-string message or content is kept as its JSON text.
func parseBody(body []byte) (Result, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{}, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var rb responseBody
	if err := dec.Decode(&rb); err != nil {
		return Result{}, false
	}
	// Anything after the object, including a stray '}' or ']', is malformed.
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return Result{}, false
	}

	code := 0
	if rb.Code != "" {
		n, ok := parseCode(rb.Code.String())
		if !ok {
			return Result{}, false
		}
		code = n
	}
	return Result{
		Code:    code,
		Message: rawText(rb.Message),
		Content: rawText(rb.Content),
		Parsed:  true,
	}, true
}

// parseCode accepts integral numbers in the int32 range, e.g. "200" or "2e2".
func parseCode(text string) (int, bool) {
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return int(n), true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
