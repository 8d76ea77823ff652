package handlers

import "net/http"

// ViewHandler serves the single-page client.
type ViewHandler struct {
	Page []byte
}

// Index handles GET / and answers 404 for any other unmatched path.
func (h ViewHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(h.Page)
}
