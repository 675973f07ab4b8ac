package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// AuditSearchHandler queries the event_log for recent grading events,
// filtered by q against the event type and key.
// GET /audit?q=...
func AuditSearchHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		rows, err := db.QueryContext(r.Context(),
			`SELECT typ, key, data, created_at FROM event_log
			 WHERE typ LIKE '%'||$1||'%' OR key LIKE '%'||$1||'%'
			 ORDER BY created_at DESC LIMIT 100`, q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		var out []map[string]any
		for rows.Next() {
			var typ, key, data string
			var createdAt int64
			if err := rows.Scan(&typ, &key, &data, &createdAt); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, map[string]any{
				"typ":        typ,
				"key":        key,
				"data":       data,
				"created_at": time.Unix(createdAt, 0),
			})
		}

		respondJSON(w, http.StatusOK, out)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
