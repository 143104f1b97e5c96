package web

import (
	"bytes"
	"io"
	"net/http"

	"nmea-ng/internal/nmea"
)

type DecodeError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// DecodeHandler decodes the single sentence in the request body.
func DecodeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}

		// Anything much longer than a sentence is rejected as a length error.
		body, err := io.ReadAll(io.LimitReader(r.Body, 4*nmea.MaxSentenceLength))
		if err != nil {
			http.Error(w, "read body failed", http.StatusBadRequest)
			return
		}
		raw := bytes.TrimLeft(body, " \t\r\n")

		f, err := nmea.ParseFrame(raw)
		var s nmea.Sentence
		if err == nil {
			s, err = nmea.DecodeFrame(f)
		}
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, DecodeError{Error: err.Error(), Kind: nmea.ErrorKind(err)})
			return
		}

		writeJSON(w, http.StatusOK, SentenceMessage{
			Type:   s.Type(),
			Talker: f.Talker(),
			Raw:    string(bytes.TrimRight(raw, "\r\n")),
			Data:   s,
		})
	})
}
