package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/casual-games-backend/internal/bingo"
	"github.com/DoyleJ11/casual-games-backend/internal/engine"
	"github.com/DoyleJ11/casual-games-backend/internal/hub"
	"github.com/DoyleJ11/casual-games-backend/internal/i18n"
	"github.com/DoyleJ11/casual-games-backend/internal/preference"
	"github.com/DoyleJ11/casual-games-backend/internal/rps"
	"github.com/DoyleJ11/casual-games-backend/internal/table"
)

const stateTimeout = 2 * time.Second

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateTable(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *table.Table, 1)
			h.Inbox() <- hub.GetTable{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			log.Debug("collision on code, regenerating", zap.String("code", c))
		}

		reply := make(chan *table.Table, 1)
		h.Inbox() <- hub.EnsureTable{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create table", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

type tableResponse struct {
	Code    string       `json:"code"`
	Version int          `json:"version"`
	Clients int          `json:"clients"`
	State   engine.State `json:"state"`
}

func GetTable(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		reply := make(chan *table.Table, 1)
		h.Inbox() <- hub.GetTable{Code: code, Reply: reply}
		tb := <-reply
		if tb == nil {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}

		views := make(chan table.View, 1)
		select {
		case tb.Inbox() <- table.GetState{Reply: views}:
		case <-tb.Done():
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}
		select {
		case v := <-views:
			writeJSON(w, http.StatusOK, tableResponse{Code: code, Version: v.Version, Clients: v.NumClients, State: v.State})
		case <-tb.Done():
			http.Error(w, "table not found", http.StatusNotFound)
		case <-time.After(stateTimeout):
			http.Error(w, "table busy", http.StatusServiceUnavailable)
		}
	}
}

type matchRequest struct {
	BestOf int `json:"best_of"`
}

type throwRequest struct {
	Action rps.Action `json:"action"`
}

type matchResponse struct {
	rps.Match
	Over   bool       `json:"over"`
	Winner rps.Result `json:"winner,omitempty"`
}

func newMatchResponse(m rps.Match) matchResponse {
	resp := matchResponse{Match: m, Over: m.Over()}
	if resp.Over {
		resp.Winner = m.Winner()
	}
	return resp
}

func CreateMatch(reg *rps.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if !decodeOptional(w, r, &req) {
			return
		}
		mode := rps.Mode(req.BestOf)
		if mode == 0 {
			mode = rps.ModeSingle
		}
		m, err := reg.Create(mode)
		if err != nil {
			writeMatchError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newMatchResponse(m))
	}
}

func GetMatch(reg *rps.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := reg.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeMatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newMatchResponse(m))
	}
}

func ThrowMatch(reg *rps.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req throwRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		m, err := reg.Throw(chi.URLParam(r, "id"), req.Action)
		if err != nil {
			writeMatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newMatchResponse(m))
	}
}

func NextMatch(reg *rps.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := reg.Next(chi.URLParam(r, "id"))
		if err != nil {
			writeMatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newMatchResponse(m))
	}
}

func ResetMatch(reg *rps.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if !decodeOptional(w, r, &req) {
			return
		}
		m, err := reg.Reset(chi.URLParam(r, "id"), rps.Mode(req.BestOf))
		if err != nil {
			writeMatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newMatchResponse(m))
	}
}

func writeMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rps.ErrMatchNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, rps.ErrIllegalAction), errors.Is(err, rps.ErrIllegalMode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, rps.ErrThrowPending), errors.Is(err, rps.ErrNoThrow), errors.Is(err, rps.ErrMatchOver):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func SpinBingo(m *bingo.Machine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Guaranteed bool `json:"guaranteed"`
		}
		if !decodeOptional(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, m.Spin(req.Guaranteed))
	}
}

type catalogResponse struct {
	Language string            `json:"language"`
	Messages map[string]string `json:"messages"`
}

// GetCatalog serves the message catalogue for the {lang} path param, or for
// the Accept-Language header when the param is absent.
func GetCatalog(w http.ResponseWriter, r *http.Request) {
	requested := chi.URLParam(r, "lang")
	if requested == "" {
		requested = r.Header.Get("Accept-Language")
	}
	tag := i18n.Match(requested)
	writeJSON(w, http.StatusOK, catalogResponse{Language: i18n.Code(tag), Messages: i18n.Catalog(tag)})
}

type languageBody struct {
	Language string `json:"language"`
}

func GetLanguage(store preference.Store, fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, err := store.Get(r.Context(), chi.URLParam(r, "client"), i18n.PreferenceKey)
		switch {
		case errors.Is(err, preference.ErrNotFound):
			lang = fallback
		case err != nil:
			http.Error(w, "failed to load preference", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, languageBody{Language: lang})
	}
}

func PutLanguage(store preference.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body languageBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if !i18n.IsSupported(body.Language) {
			http.Error(w, "unsupported language", http.StatusBadRequest)
			return
		}
		if err := store.Set(r.Context(), chi.URLParam(r, "client"), i18n.PreferenceKey, body.Language); err != nil {
			http.Error(w, "failed to save preference", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeOptional decodes a JSON body into v; an empty body leaves v untouched.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
