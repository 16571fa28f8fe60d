package ledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/sohakim/gagyebu/internal/api"
	"github.com/sohakim/gagyebu/internal/model"
	"github.com/sohakim/gagyebu/internal/session"
)

// fakeBackend is an in-memory stand-in for the tracker API implementing
// the soft-delete contract: active and trash are disjoint partitions,
// deleting a trashed id is 404, restoring a non-trashed id is 404.
type fakeBackend struct {
	categories map[int64]model.Category
	catTrash   map[int64]bool
	tags       map[int64]model.Tag
	tagTrash   map[int64]bool
	txns       map[int64]model.Transaction
	nextID     int64
	mu         sync.Mutex
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		categories: make(map[int64]model.Category),
		catTrash:   make(map[int64]bool),
		tags:       make(map[int64]model.Tag),
		tagTrash:   make(map[int64]bool),
		txns:       make(map[int64]model.Transaction),
	}
}

func (f *fakeBackend) id() int64 {
	f.nextID++
	return f.nextID
}

func notFound(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /categories/{$}", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []model.Category{}
		for id, c := range f.categories {
			if !f.catTrash[id] {
				out = append(out, c)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("GET /categories/trash/{$}", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []model.Category{}
		for id, c := range f.categories {
			if f.catTrash[id] {
				out = append(out, c)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("POST /categories/{$}", func(w http.ResponseWriter, r *http.Request) {
		var c model.Category
		_ = json.NewDecoder(r.Body).Decode(&c)
		f.mu.Lock()
		defer f.mu.Unlock()
		c.ID = f.id()
		f.categories[c.ID] = c
		writeJSON(w, http.StatusCreated, c)
	})

	mux.HandleFunc("PATCH /categories/{id}/", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		c, ok := f.categories[id]
		if !ok || f.catTrash[id] {
			notFound(w, "category not found")
			return
		}
		var patch map[string]json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&patch)
		if raw, ok := patch["name"]; ok {
			_ = json.Unmarshal(raw, &c.Name)
		}
		if raw, ok := patch["kind"]; ok {
			_ = json.Unmarshal(raw, &c.Kind)
		}
		if raw, ok := patch["sort_order"]; ok {
			_ = json.Unmarshal(raw, &c.SortOrder)
		}
		if raw, ok := patch["parent"]; ok {
			if string(raw) == "null" {
				c.Parent = nil
			} else {
				var p int64
				_ = json.Unmarshal(raw, &p)
				c.Parent = &p
			}
		}
		f.categories[id] = c
		writeJSON(w, http.StatusOK, c)
	})

	mux.HandleFunc("DELETE /categories/{id}/", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.categories[id]; !ok || f.catTrash[id] {
			notFound(w, "category not found")
			return
		}
		f.catTrash[id] = true
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /categories/{id}/restore/", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.categories[id]; !ok || !f.catTrash[id] {
			notFound(w, "category not in trash")
			return
		}
		delete(f.catTrash, id)
		writeJSON(w, http.StatusOK, f.categories[id])
	})

	mux.HandleFunc("GET /tags/{$}", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []model.Tag{}
		for id, tag := range f.tags {
			if !f.tagTrash[id] {
				out = append(out, tag)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("GET /tags/trash/{$}", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []model.Tag{}
		for id, tag := range f.tags {
			if f.tagTrash[id] {
				out = append(out, tag)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("POST /tags/{$}", func(w http.ResponseWriter, r *http.Request) {
		var tag model.Tag
		_ = json.NewDecoder(r.Body).Decode(&tag)
		f.mu.Lock()
		defer f.mu.Unlock()
		tag.ID = f.id()
		f.tags[tag.ID] = tag
		writeJSON(w, http.StatusCreated, tag)
	})

	mux.HandleFunc("PATCH /tags/{id}/", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		tag, ok := f.tags[id]
		if !ok || f.tagTrash[id] {
			notFound(w, "tag not found")
			return
		}
		var patch map[string]string
		_ = json.NewDecoder(r.Body).Decode(&patch)
		if v, ok := patch["name"]; ok {
			tag.Name = v
		}
		if v, ok := patch["color"]; ok {
			tag.Color = v
		}
		f.tags[id] = tag
		writeJSON(w, http.StatusOK, tag)
	})

	mux.HandleFunc("DELETE /tags/{id}/", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.tags[id]; !ok || f.tagTrash[id] {
			notFound(w, "tag not found")
			return
		}
		f.tagTrash[id] = true
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /tags/{id}/restore/", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.tags[id]; !ok || !f.tagTrash[id] {
			notFound(w, "tag not in trash")
			return
		}
		delete(f.tagTrash, id)
		writeJSON(w, http.StatusOK, f.tags[id])
	})

	mux.HandleFunc("GET /transactions/{$}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		q := r.URL.Query()
		out := []model.Transaction{}
		for _, tx := range f.txns {
			if v := q.Get("account"); v != "" {
				if id, _ := strconv.ParseInt(v, 10, 64); id != tx.Account {
					continue
				}
			}
			if v := q.Get("direction"); v != "" && v != string(tx.Direction) {
				continue
			}
			if v := q.Get("min_amount"); v != "" {
				if bound, _ := strconv.ParseFloat(v, 64); float64(tx.Amount) < bound {
					continue
				}
			}
			if v := q.Get("max_amount"); v != "" {
				if bound, _ := strconv.ParseFloat(v, 64); float64(tx.Amount) > bound {
					continue
				}
			}
			if v := q.Get("start_date"); v != "" {
				if d, err := model.ParseDate(v); err == nil && tx.OccurredAt.Before(d.Time) {
					continue
				}
			}
			if v := q.Get("end_date"); v != "" {
				if d, err := model.ParseDate(v); err == nil && !tx.OccurredAt.Before(d.AddDate(0, 0, 1)) {
					continue
				}
			}
			out = append(out, tx)
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("POST /transactions/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			model.Transaction
			TagIDs []int64 `json:"tags"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		tx := in.Transaction
		tx.ID = f.id()
		tx.Tags = nil
		for _, tagID := range in.TagIDs {
			if tag, ok := f.tags[tagID]; ok {
				tx.Tags = append(tx.Tags, tag)
			}
		}
		f.txns[tx.ID] = tx
		writeJSON(w, http.StatusCreated, tx)
	})

	mux.HandleFunc("PATCH /transactions/{id}/", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		tx, ok := f.txns[id]
		if !ok {
			notFound(w, "transaction not found")
			return
		}
		var patch map[string]json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&patch)
		if raw, ok := patch["amount"]; ok {
			_ = json.Unmarshal(raw, &tx.Amount)
		}
		if raw, ok := patch["direction"]; ok {
			_ = json.Unmarshal(raw, &tx.Direction)
		}
		if raw, ok := patch["method"]; ok {
			_ = json.Unmarshal(raw, &tx.Method)
		}
		if raw, ok := patch["description"]; ok {
			_ = json.Unmarshal(raw, &tx.Description)
		}
		if raw, ok := patch["occurred_at"]; ok {
			_ = json.Unmarshal(raw, &tx.OccurredAt)
		}
		if raw, ok := patch["tags"]; ok {
			var tagIDs []int64
			_ = json.Unmarshal(raw, &tagIDs)
			tx.Tags = nil
			for _, tagID := range tagIDs {
				if tag, ok := f.tags[tagID]; ok {
					tx.Tags = append(tx.Tags, tag)
				}
			}
		}
		f.txns[id] = tx
		writeJSON(w, http.StatusOK, tx)
	})

	mux.HandleFunc("DELETE /transactions/{id}/", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.txns[id]; !ok {
			notFound(w, "transaction not found")
			return
		}
		delete(f.txns, id)
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

// newTestRepository spins up a fake backend and a repository against it.
func newTestRepository(t *testing.T) (*Repository, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, session.Static("test-token"))
	return NewRepository(client), backend
}
