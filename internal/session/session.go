// Package session holds per-sender conversational state: the pagination
// markers the classifier's guard reads, persisted in Redis so dialogue
// context survives restarts.
package session

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/healthplug/pharmabot/internal/intent"
)

// Marker is a truthy pagination flag. Older session payloads stored
// markers as numbers, strings, or whole list-state objects rather than
// booleans, so unmarshaling accepts any JSON value and coerces it.
type Marker bool

func (m *Marker) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*m = false
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = s != "" && s != "0" && s != "false"
		return nil
	case data[0] == '{' || data[0] == '[':
		// A structured value means some list state was stored there.
		*m = true
		return nil
	case bytes.Equal(data, []byte("true")):
		*m = true
		return nil
	case bytes.Equal(data, []byte("false")):
		*m = false
		return nil
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*m = n != 0
		return nil
	}
}

// Data is the session's mutable payload.
type Data struct {
	DoctorSpecialtyPagination Marker `json:"doctorSpecialtyPagination,omitempty"`
	DoctorPagination          Marker `json:"doctorPagination,omitempty"`
	ProductPagination         Marker `json:"productPagination,omitempty"`
	CartPagination            Marker `json:"cartPagination,omitempty"`
}

// Session is one sender's conversational context.
type Session struct {
	SenderID  string    `json:"senderId"`
	Data      Data      `json:"data"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns a fresh session for senderID with no markers set.
func New(senderID string) *Session {
	return &Session{SenderID: senderID}
}

// View projects the session into the read-only form the classifier
// guard consumes.
func (s *Session) View() intent.SessionView {
	return intent.SessionView{
		DoctorSpecialtyPagination: bool(s.Data.DoctorSpecialtyPagination),
		DoctorPagination:          bool(s.Data.DoctorPagination),
		ProductPagination:         bool(s.Data.ProductPagination),
		CartPagination:            bool(s.Data.CartPagination),
	}
}

// ClearPagination drops every pagination marker.
func (s *Session) ClearPagination() {
	s.Data.DoctorSpecialtyPagination = false
	s.Data.DoctorPagination = false
	s.Data.ProductPagination = false
	s.Data.CartPagination = false
}
