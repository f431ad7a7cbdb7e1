package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// lookupRequest is the body accepted by the search, profile and media routes
type lookupRequest struct {
	Username        string     `json:"username"`
	Amount          flexAmount `json:"amount"`
	PaginationToken string     `json:"pagination_token"`
}

var errInvalidAmount = errors.New("amount must be a number")

// flexAmount accepts a whole JSON number or a numeric string
type flexAmount int

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return a.parse(s)
	}
	// numbers go through the same integer parse as strings, so 12.5 and 1e30 are rejected
	return a.parse(string(data))
}

func (a *flexAmount) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*a = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errInvalidAmount
	}
	*a = flexAmount(n)
	return nil
}

// decodeLookup reads a JSON or form-encoded body. An empty body decodes to
// the zero request so that validation reports the missing username.
func decodeLookup(w http.ResponseWriter, r *http.Request) (lookupRequest, error) {
	var req lookupRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form body")
		}
		req.Username = r.PostForm.Get("username")
		req.PaginationToken = r.PostForm.Get("pagination_token")
		if err := req.Amount.parse(r.PostForm.Get("amount")); err != nil {
			return req, err
		}
		return req, nil
	default:
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(r.Body); err != nil {
			return req, fmt.Errorf("invalid request body")
		}
		if len(bytes.TrimSpace(buf.Bytes())) == 0 {
			return req, nil
		}
		if err := json.Unmarshal(buf.Bytes(), &req); err != nil {
			if errors.Is(err, errInvalidAmount) {
				return req, errInvalidAmount
			}
			return req, fmt.Errorf("invalid JSON body")
		}
		return req, nil
	}
}
