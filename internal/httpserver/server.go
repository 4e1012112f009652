// internal/httpserver/server.go
//
// HTTP server wiring for the WordScramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /round/new, GET /round, POST /round/submit.
//   - WebSocket endpoint: GET /round/ws (see ws.go).
//   - Session tokens: HS256 JWTs carrying the session ID, read from the
//     Authorization header, the session cookie, or ?token= (websockets).
//
// Notes:
//   - Rejected words are normal gameplay and answer 200 with accepted=false.
//   - A root word source failure is a server configuration problem (500).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Comtister/WordScramble/internal/game"
	"github.com/Comtister/WordScramble/internal/store"
)

// Round modes accepted by POST /round/new and the websocket new_round frame.
const (
	ModeRandom = "random"
	ModeDaily  = "daily"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Engine *game.Engine
	Store  store.Store
	Words  game.RootWordSource // random root words
	Daily  game.RootWordSource // word of the day; nil disables daily mode

	// Stats feeds /debug/words; may be nil.
	Stats func() map[string]int

	Secret       string
	TokenTTL     time.Duration
	CookieName   string
	ClientOrigin string
	Secure       bool // Secure + SameSite=None cookies (production)
}

// Server bundles the router and round dependencies.
type Server struct {
	r        *chi.Mux
	deps     Deps
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps) *Server {
	if deps.TokenTTL <= 0 {
		deps.TokenTTL = 24 * time.Hour
	}
	if deps.CookieName == "" {
		deps.CookieName = "wordscramble_session"
	}
	s := &Server{r: chi.NewRouter(), deps: deps}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(cors(deps.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble","endpoints":["/health","POST /round/new","GET /round","POST /round/submit","GET /round/ws"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	// Request/response routes are time-bounded; the websocket is not.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.With(s.withOptionalSession()).Post("/round/new", s.handleNewRound)
		r.With(s.requireSession()).Get("/round", s.handleGetRound)
		r.With(s.requireSession()).Post("/round/submit", s.handleSubmit)
	})
	s.r.With(s.requireSession()).Get("/round/ws", s.handleWS)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ ROUNDS -------------------------------------

type newRoundReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}

type newRoundRes struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	RootWord  string `json:"rootWord"`
	Mode      string `json:"mode"`
}

// handleNewRound starts a round. A caller presenting a valid session token
// restarts its own session; everyone else gets a new session.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	mode, ok := s.normalizeMode(req.Mode)
	if !ok {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r.Context())
	isNew := sess == nil
	if isNew {
		sess = game.NewSession(s.deps.Engine, s.deps.Words)
	}

	root, err := s.startRound(sess, mode)
	if err != nil {
		log.Error().Err(err).Str("sessionId", sess.ID).Str("mode", mode).Msg("start round")
		http.Error(w, `{"error":"word_source_unavailable"}`, http.StatusInternalServerError)
		return
	}
	if isNew {
		if err := s.deps.Store.Save(r.Context(), sess); err != nil {
			log.Error().Err(err).Msg("save session")
			http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
			return
		}
	}

	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, tok, exp)

	log.Debug().Str("sessionId", sess.ID).Str("mode", mode).Bool("newSession", isNew).Msg("round started")
	_ = json.NewEncoder(w).Encode(newRoundRes{SessionID: sess.ID, Token: tok, RootWord: root, Mode: mode})
}

// handleGetRound renders the caller's current round.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

type submitReq struct {
	Word string `json:"word"`
}

type submitRes struct {
	Accepted bool          `json:"accepted"`
	Reason   game.Reason   `json:"reason,omitempty"`
	Title    string        `json:"title,omitempty"`
	Message  string        `json:"message,omitempty"`
	Round    game.Snapshot `json:"round"`
}

// handleSubmit evaluates one candidate for the caller's round.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r.Context())
	res, err := s.submit(sess, req.Word)
	if err != nil {
		http.Error(w, `{"error":"no_round"}`, http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// submit runs a candidate through the session and shapes the response.
// Shared by the HTTP and websocket handlers.
func (s *Server) submit(sess *game.Session, word string) (submitRes, error) {
	out, err := sess.Submit(word)
	if err != nil {
		return submitRes{}, err
	}
	res := submitRes{Accepted: out.Accepted, Round: sess.Snapshot()}
	if !out.Accepted {
		res.Reason = out.Reason
		res.Title = out.Reason.Title()
		res.Message = out.Reason.Message()
	}
	log.Debug().Str("sessionId", sess.ID).Bool("accepted", out.Accepted).Str("reason", string(out.Reason)).Msg("word submitted")
	return res, nil
}

// startRound restarts sess using the source for mode.
func (s *Server) startRound(sess *game.Session, mode string) (string, error) {
	if mode == ModeDaily {
		return sess.StartRoundFrom(s.deps.Daily)
	}
	return sess.StartRound()
}

// normalizeMode maps an empty mode to random and rejects unknown ones.
// Daily mode is only available when a daily source is configured.
func (s *Server) normalizeMode(mode string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeRandom:
		return ModeRandom, true
	case ModeDaily:
		return ModeDaily, s.deps.Daily != nil
	}
	return "", false
}

func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	out := map[string]int{"sessions": s.deps.Store.Len()}
	if s.deps.Stats != nil {
		for k, v := range s.deps.Stats() {
			out[k] = v
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// --------------------------- session tokens --------------------------------

// ctxSessionKey is the context key type for the caller's *game.Session.
type ctxSessionKey struct{}

func sessionFrom(ctx context.Context) *game.Session {
	sess, _ := ctx.Value(ctxSessionKey{}).(*game.Session)
	return sess
}

// lookupSession resolves a token to a stored session.
func (s *Server) lookupSession(ctx context.Context, tok string) (*game.Session, error) {
	sid, err := s.parseToken(tok)
	if err != nil {
		return nil, err
	}
	return s.deps.Store.Get(ctx, sid)
}

// withOptionalSession attaches the caller's session when a valid token is
// present. It never rejects the request.
func (s *Server) withOptionalSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := s.tokenFrom(r); tok != "" {
				if sess, err := s.lookupSession(r.Context(), tok); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ctxSessionKey{}, sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireSession enforces a valid token for a session that still exists.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.tokenFrom(r)
			if tok == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			sess, err := s.lookupSession(r.Context(), tok)
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// signToken creates an HS256 JWT carrying the session ID.
func (s *Server) signToken(sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.deps.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.deps.Secret))
	return ss, exp, err
}

// parseToken validates tok and returns its session ID.
func (s *Server) parseToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.deps.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("token has no session")
	}
	return sid, nil
}

// tokenFrom extracts a token from the Authorization header, the session
// cookie, or the token query parameter, in that order.
func (s *Server) tokenFrom(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.deps.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

// setSessionCookie writes the session token cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.deps.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.deps.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.deps.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}
