// Package apitest runs an in-memory stand-in of the linkedin-clone REST
// backend for tests. It implements the endpoints the client consumes with
// real bearer-token checks, so session and view code can be exercised end to
// end without a network.
package apitest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
)

// BasePath is the API prefix, matching the hosted backend.
const BasePath = "/api/v1"

// DefaultTokenTTL is the validity of tokens issued by login and register.
const DefaultTokenTTL = time.Hour

// Request is one recorded call.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

type account struct {
	user         models.User
	passwordHash []byte
}

type failure struct {
	status  int
	message string
}

// Server is an httptest.Server serving the API under BasePath.
type Server struct {
	*httptest.Server

	secret []byte

	mu       sync.Mutex
	accounts map[string]*account // by user id
	byEmail  map[string]string
	posts    []models.Post // most recent first
	requests []Request
	failures map[string]failure // "METHOD /path" -> forced response
}

// NewServer starts a server. Call Close when done.
func NewServer() *Server {
	s := &Server{
		secret:   []byte(uuid.NewString()),
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
		failures: make(map[string]failure),
	}

	r := mux.NewRouter()
	api := r.PathPrefix(BasePath).Subrouter()
	api.Use(s.record, s.injectFailures)

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.authenticated(s.handleMe)).Methods(http.MethodGet)
	api.HandleFunc("/posts", s.authenticated(s.handleListPosts)).Methods(http.MethodGet)
	api.HandleFunc("/posts", s.authenticated(s.handleCreatePost)).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", s.authenticated(s.handleUpdatePost)).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id}", s.authenticated(s.handleDeletePost)).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id}", s.authenticated(s.handleProfile)).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the URL a client should be configured with.
func (s *Server) BaseURL() string {
	return s.URL + BasePath
}

// AddUser creates an account directly, bypassing the register endpoint.
func (s *Server) AddUser(name, email, password string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	u := models.User{ID: uuid.NewString(), Name: name, Email: email}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[u.ID] = &account{user: u, passwordHash: hash}
	s.byEmail[strings.ToLower(email)] = u.ID
	return u
}

// IssueToken signs a token for userID valid for ttl. A negative ttl yields
// an already expired token.
func (s *Server) IssueToken(userID string, ttl time.Duration) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// AddPost stores a post by authorID as the most recent one.
func (s *Server) AddPost(authorID, content string) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPostLocked(authorID, content)
}

func (s *Server) addPostLocked(authorID, content string) models.Post {
	now := time.Now().UTC().Truncate(time.Millisecond)
	p := models.Post{
		ID:        uuid.NewString(),
		Author:    s.authorLocked(authorID),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts = append([]models.Post{p}, s.posts...)
	return p
}

// Posts returns the stored posts, most recent first.
func (s *Server) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Post(nil), s.posts...)
}

// Requests returns every call received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// ResetRequests forgets recorded calls.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
}

// FailWith makes every call to method+path (path relative to BasePath,
// e.g. "/posts") answer with status and message until cleared with status 0.
func (s *Server) FailWith(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + BasePath + path
	if status == 0 {
		delete(s.failures, key)
		return
	}
	s.failures[key] = failure{status: status, message: message}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, userID string)

func (s *Server) authenticated(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		c := &claims{}
		_, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		s.mu.Lock()
		_, exists := s.accounts[c.UserID]
		s.mu.Unlock()
		if !exists {
			writeError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		h(w, r, c.UserID)
	}
}

type fieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterData
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []fieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, fieldError{Param: "name", Msg: "Name is required"})
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs = append(errs, fieldError{Param: "email", Msg: "Please include a valid email"})
	}
	if len(in.Password) < models.MinPasswordLength {
		errs = append(errs, fieldError{Param: "password", Msg: "Please enter a password with 6 or more characters"})
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	s.mu.Lock()
	_, taken := s.byEmail[strings.ToLower(in.Email)]
	s.mu.Unlock()
	if taken {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []fieldError{{Param: "email", Msg: "Email already in use"}},
		})
		return
	}

	u := s.AddUser(in.Name, in.Email, in.Password)
	s.mu.Lock()
	s.accounts[u.ID].user.Bio = in.Bio
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "token": s.IssueToken(u.ID, DefaultTokenTTL)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	id, ok := s.byEmail[strings.ToLower(in.Email)]
	var acc account
	if ok {
		acc = *s.accounts[id]
	}
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(in.Password)) != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": s.IssueToken(id, DefaultTokenTTL)})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, userID string) {
	s.mu.Lock()
	u := s.accounts[userID].user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": u})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request, _ string) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": s.Posts()})
}

type contentBody struct {
	Content string `json:"content"`
}

func decodeContent(r *http.Request) (string, error) {
	var in contentBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Content) == "" {
		return "", errors.New("content is required")
	}
	return in.Content, nil
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request, userID string) {
	content, err := decodeContent(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []fieldError{{Param: "content", Msg: "Content is required"}},
		})
		return
	}
	p := s.AddPost(userID, content)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": p})
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, userID string) {
	content, err := decodeContent(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []fieldError{{Param: "content", Msg: "Content is required"}},
		})
		return
	}

	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID != id {
			continue
		}
		if p.Author.ID != userID {
			writeError(w, http.StatusForbidden, "User not authorized")
			return
		}
		p.Content = content
		p.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
		s.posts[i] = p
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": p})
		return
	}
	writeError(w, http.StatusNotFound, "Post not found")
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, userID string) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID != id {
			continue
		}
		if p.Author.ID != userID {
			writeError(w, http.StatusForbidden, "User not authorized")
			return
		}
		s.posts = append(s.posts[:i:i], s.posts[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
		return
	}
	writeError(w, http.StatusNotFound, "Post not found")
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, _ string) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	acc, ok := s.accounts[id]
	var u models.User
	posts := []models.Post{}
	if ok {
		u = acc.user
		for _, p := range s.posts {
			if p.Author.ID == id {
				posts = append(posts, p)
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    models.ProfilePage{User: u, Posts: posts},
	})
}

func (s *Server) authorLocked(userID string) models.Author {
	acc, ok := s.accounts[userID]
	if !ok {
		return models.Author{ID: userID}
	}
	return models.Author{ID: acc.user.ID, Name: acc.user.Name, Avatar: acc.user.Avatar, Headline: acc.user.Headline}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}
