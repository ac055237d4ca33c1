package server

import (
	"encoding/xml"
	"net/http"
)

// twiml is the reply body an SMS gateway expects: one outgoing message.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// handleSMS answers a gateway webhook. The query is the form field Body;
// every outcome, including bad input, is a 200 with a message so the sender
// always gets a text back.
func (s *Server) handleSMS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	body := r.FormValue("Body")
	reply, ok := s.responder.Reply(body)
	if !ok {
		s.logger.Error("Lookup failed", "request_id", RequestID(r), "body", body)
	} else {
		s.logger.Info("Answered SMS", "request_id", RequestID(r), "from", r.FormValue("From"), "body", body)
	}

	out, err := xml.Marshal(twiml{Message: reply})
	if err != nil {
		http.Error(w, "encode reply", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
