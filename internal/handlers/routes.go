package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every API route.
func NewRouter(sessions *SessionHandler, health *HealthHandler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/health", health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/sessions", sessions.Create).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", sessions.Get).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}", sessions.Delete).Methods(http.MethodDelete)
	v1.HandleFunc("/sessions/{id}/actions", sessions.Action).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/end-day", sessions.EndDay).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/config", sessions.Config).Methods(http.MethodPatch)
	v1.HandleFunc("/sessions/{id}/difficulty", sessions.Difficulty).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/items/{index}/use", sessions.UseItem).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/items/{index}/equip", sessions.Equip).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/equipment/{slot}/unequip", sessions.Unequip).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/save", sessions.Save).Methods(http.MethodPost)
	v1.HandleFunc("/saves", sessions.ListSaves).Methods(http.MethodGet)
	v1.HandleFunc("/saves/{handle}", sessions.DeleteSave).Methods(http.MethodDelete)
	v1.HandleFunc("/saves/{handle}/load", sessions.Load).Methods(http.MethodPost)
	return r
}
