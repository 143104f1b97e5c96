package web

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"time"

	"nmea-ng/internal/nmea"
)

type SentenceTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Decoded     bool   `json:"decoded"`
}

type AboutResponse struct {
	Service    string             `json:"service"`
	NowUTC     string             `json:"now_utc"`
	GoVersion  string             `json:"go_version"`
	ModulePath string             `json:"module_path,omitempty"`
	Version    string             `json:"version,omitempty"`
	Commit     string             `json:"commit,omitempty"`
	Dirty      bool               `json:"dirty,omitempty"`
	BuildTime  string             `json:"build_time,omitempty"`
	Sentences  []SentenceTypeInfo `json:"sentences"`
}

// AboutHandler reports build information and the sentence types known to
// the decoder.
func AboutHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodGet) {
			return
		}

		resp := AboutResponse{
			Service:   "nmea-ng",
			NowUTC:    time.Now().UTC().Format(time.RFC3339Nano),
			GoVersion: runtime.Version(),
		}

		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			resp.ModulePath = bi.Main.Path
			resp.Version = bi.Main.Version
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					resp.Commit = s.Value
				case "vcs.modified":
					resp.Dirty = s.Value == "true"
				case "vcs.time":
					resp.BuildTime = s.Value
				}
			}
		}

		for _, st := range nmea.Types() {
			resp.Sentences = append(resp.Sentences, SentenceTypeInfo{
				Type:        st.String(),
				Description: st.Description(),
				Decoded:     nmea.Implemented(st),
			})
		}

		writeJSON(w, http.StatusOK, resp)
	})
}
