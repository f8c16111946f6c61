package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/midisong/constants"
	"github.com/jsphweid/midisong/midi"
	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/note"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 16 * 1024 * 1024

var port int

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `Serves POST /convert, which takes a midi file body and returns its .song files as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf(":%d", port)
		logrus.Infof("Listening on %v", addr)
		return http.ListenAndServe(addr, NewHandler())
	},
}

func NewHandler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func parseSongConfig(r *http.Request) (songConfig, error) {
	q := r.URL.Query()
	cfg := songConfig{Budget: constants.GetChunkBudget()}

	var err error
	if cfg.Pairing, err = note.ParsePairing(q.Get("pairing")); err != nil {
		return cfg, err
	}
	ints := map[string]*int{
		"budget":      &cfg.Budget,
		"tempo_track": &cfg.TempoTrack,
		"preview":     &cfg.Preview,
	}
	for key, dst := range ints {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, errors.Wrapf(err, "%v must be an integer", key)
		}
		*dst = v
	}
	return cfg, nil
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)

	title := r.URL.Query().Get("title")
	if title == "" {
		title = "song"
	}
	logger := logrus.WithFields(logrus.Fields{"request": requestID, "title": title})

	cfg, err := parseSongConfig(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	song, err := midi.Read(bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	files, res, err := convertSong(song, title, cfg, logger)
	if err != nil {
		logger.Warnf("conversion failed: %v", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	logger.WithField("files", len(files)).Info("converted")
	writeJSON(w, http.StatusOK, model.ConvertResponse{Title: title, Notes: len(res.Notes), Files: files})
}
