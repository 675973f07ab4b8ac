package httpchi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedHAlshaer/mathgrader/pkg/gradebook-sync/gradebook"
)

type API struct{ Syncer *gradebook.Syncer }

func (a *API) Routes(r chi.Router) {
	r.Post("/gradebook/sync", a.postSync)
	r.Post("/results/{id}/sync", a.postSyncByID)
}

type syncReq struct {
	ResultID string `json:"result_id"`
}

func (a *API) postSync(w http.ResponseWriter, r *http.Request) {
	var req syncReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.ResultID == "" {
		http.Error(w, "result_id required", 400)
		return
	}
	a.sync(w, req.ResultID)
}

func (a *API) postSyncByID(w http.ResponseWriter, r *http.Request) {
	a.sync(w, chi.URLParam(r, "id"))
}

func (a *API) sync(w http.ResponseWriter, resultID string) {
	if err := a.Syncer.SyncResult(resultID); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
