package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fieldedge/internal/infra/telemetry"
)

const (
	defaultPageSize = 50
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// samplePDF is the smallest document most viewers accept.
var samplePDF = []byte("%PDF-1.4\n1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n2 0 obj<</Type/Pages/Kids[]/Count 0>>endobj\ntrailer<</Root 1 0 R>>\n%%EOF\n")

// views serve a filtered listing of another collection.
var views = map[string]string{
	"customers/search":    "customers",
	"inventory/low-stock": "inventory",
	"dispatch/board":      "appointments",
}

// nestedCollections live below a parent path and list empty before their first write.
var nestedCollections = map[string]struct{}{
	"inventory/transactions": {},
}

// paging keys are never used as record filters.
var paging = map[string]struct{}{
	"page": {}, "pageSize": {}, "sortBy": {}, "sortOrder": {}, "search": {},
}

type Options struct {
	// Token, when set, must be presented as a bearer credential.
	Token string
	// Prefix is stripped from request paths, e.g. "/v1".
	Prefix string
	Logger *zap.Logger
	Now    func() time.Time
}

// Action is one POST/PATCH applied to /{collection}/{id}/{action}.
type Action struct {
	Collection string
	ID         string
	Name       string
	Body       map[string]any
}

// Server is an in-memory stand-in for the FieldEdge REST API.
type Server struct {
	mu          sync.RWMutex
	collections map[string]*collection
	actions     []Action

	token  string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

type collection struct {
	order   []string
	records map[string]map[string]any
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		collections: make(map[string]*collection),
		token:       strings.TrimSpace(opts.Token),
		prefix:      strings.TrimRight(opts.Prefix, "/"),
		logger:      logger.Named("mockapi"),
		now:         now,
	}
}

// Actions returns every recorded action in arrival order.
func (s *Server) Actions() []Action {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Action(nil), s.actions...)
}

// Seed stores record under collection, assigning an id when it has none.
func (s *Server) Seed(name string, record map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(name, record)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}

	path := strings.TrimPrefix(r.URL.Path, s.prefix)
	segments := splitPath(path)
	s.logger.Debug("mock request",
		telemetry.MethodField(r.Method),
		telemetry.PathField(r.URL.Path),
	)
	if len(segments) == 0 {
		writeNotFound(w)
		return
	}

	if segments[0] == "reports" && len(segments) > 1 && r.Method == http.MethodGet {
		s.report(w, r, strings.Join(segments[1:], "/"))
		return
	}

	switch len(segments) {
	case 1:
		s.serveCollection(w, r, segments[0])
	case 2:
		s.serveRecord(w, r, segments[0], segments[1])
	case 3:
		s.serveNested(w, r, segments[0], segments[1], segments[2])
	default:
		writeNotFound(w)
	}
}

func (s *Server) authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return false
	}
	presented := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	if presented == "" {
		return false
	}
	return s.token == "" || presented == s.token
}

func (s *Server) serveCollection(w http.ResponseWriter, r *http.Request, name string) {
	switch r.Method {
	case http.MethodGet:
		s.list(w, r, name, nil)
	case http.MethodPost:
		s.create(w, r, name)
	default:
		writeMethodNotAllowed(w)
	}
}

func (s *Server) serveRecord(w http.ResponseWriter, r *http.Request, name, id string) {
	key := name + "/" + id
	if target, ok := views[key]; ok && r.Method == http.MethodGet {
		s.list(w, r, target, nil)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if record, ok := s.get(name, id); ok {
			writeJSON(w, http.StatusOK, record)
			return
		}
		if _, known := nestedCollections[key]; known || s.hasCollection(key) {
			s.list(w, r, key, nil)
			return
		}
		writeNotFound(w)
	case http.MethodPost:
		s.create(w, r, key)
	case http.MethodPatch, http.MethodPut:
		body, err := readBody(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		record, ok := s.update(name, id, body, r.Method == http.MethodPut)
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodDelete:
		if !s.remove(name, id) {
			writeNotFound(w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (s *Server) serveNested(w http.ResponseWriter, r *http.Request, name, id, sub string) {
	if _, ok := s.get(name, id); !ok {
		writeNotFound(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if name == "invoices" && sub == "pdf" {
			w.Header().Set("Content-Type", "application/pdf")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(samplePDF)
			return
		}
		// /customers/{id}/jobs lists jobs whose customerId matches.
		owner := strings.TrimSuffix(name, "s") + "Id"
		s.list(w, r, sub, map[string]string{owner: id})
	case http.MethodPost, http.MethodPatch:
		body, err := readBody(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		record, ok := s.apply(name, id, sub, body)
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, record)
	default:
		writeMethodNotAllowed(w)
	}
}

func (s *Server) report(w http.ResponseWriter, r *http.Request, name string) {
	params := make(map[string]any)
	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			params[key] = values[0]
		} else {
			params[key] = values
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"report":      name,
		"generatedAt": s.timestamp(),
		"params":      params,
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, name string, scope map[string]string) {
	query := r.URL.Query()
	page := positiveInt(query.Get("page"), 1)
	pageSize := positiveInt(query.Get("pageSize"), defaultPageSize)

	filters := make(map[string]string)
	for key := range query {
		if _, skip := paging[key]; !skip {
			filters[key] = query.Get(key)
		}
	}
	for key, value := range scope {
		filters[key] = value
	}

	s.mu.RLock()
	var matched []map[string]any
	if c, ok := s.collections[name]; ok {
		for _, id := range c.order {
			record := c.records[id]
			if matches(record, filters) {
				matched = append(matched, cloneRecord(record))
			}
		}
	}
	s.mu.RUnlock()

	if sortBy := query.Get("sortBy"); sortBy != "" {
		desc := strings.EqualFold(query.Get("sortOrder"), "desc")
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := fmt.Sprint(matched[i][sortBy]), fmt.Sprint(matched[j][sortBy])
			if desc {
				return a > b
			}
			return a < b
		})
	}

	total := len(matched)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	data := matched[start:end]
	if data == nil {
		data = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":        data,
		"totalCount":  total,
		"pageSize":    pageSize,
		"currentPage": page,
		"totalPages":  int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request, name string) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
		return
	}
	s.mu.Lock()
	id := s.insert(name, body)
	record := cloneRecord(s.collections[name].records[id])
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, record)
}

// insert requires s.mu held for writing.
func (s *Server) insert(name string, record map[string]any) string {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{records: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	stored := cloneRecord(record)
	if stored == nil {
		stored = make(map[string]any)
	}
	id, _ := stored["id"].(string)
	if id == "" {
		id = uuid.NewString()
		stored["id"] = id
	}
	now := s.timestamp()
	if _, ok := stored["createdAt"]; !ok {
		stored["createdAt"] = now
	}
	stored["updatedAt"] = now
	if _, exists := c.records[id]; !exists {
		c.order = append(c.order, id)
	}
	c.records[id] = stored
	return id
}

func (s *Server) get(name, id string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return nil, false
	}
	record, ok := c.records[id]
	if !ok {
		return nil, false
	}
	return cloneRecord(record), true
}

func (s *Server) hasCollection(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[name]
	return ok
}

func (s *Server) update(name, id string, body map[string]any, replace bool) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		return nil, false
	}
	record, ok := c.records[id]
	if !ok {
		return nil, false
	}
	if replace {
		fresh := map[string]any{"id": id, "createdAt": record["createdAt"]}
		record = fresh
	}
	for key, value := range body {
		if key == "id" {
			continue
		}
		record[key] = value
	}
	record["updatedAt"] = s.timestamp()
	c.records[id] = record
	return cloneRecord(record), true
}

func (s *Server) remove(name, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		return false
	}
	if _, ok := c.records[id]; !ok {
		return false
	}
	delete(c.records, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Server) apply(name, id, action string, body map[string]any) (map[string]any, bool) {
	record, ok := s.update(name, id, body, false)
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	s.actions = append(s.actions, Action{Collection: name, ID: id, Name: action, Body: cloneRecord(body)})
	s.mu.Unlock()
	return record, true
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func matches(record map[string]any, filters map[string]string) bool {
	for key, want := range filters {
		got, ok := record[key]
		if !ok {
			continue
		}
		if fmt.Sprint(got) != want {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	var out []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func readBody(r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return map[string]any{}, nil
	}
	var body map[string]any
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return body, nil
}

func cloneRecord(record map[string]any) map[string]any {
	if record == nil {
		return nil
	}
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
}
