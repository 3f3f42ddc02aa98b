package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleetride-backend/internal/security"
)

// NewRouter wires the HTTP surface. Everything behind /api/v1 requires an
// authenticated actor.
func NewRouter(
	tokens security.TokenManager,
	bookings *BookingHandler,
	assignments *AssignmentHandler,
	trips *TripHandler,
	notifications *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Authenticate(tokens))

	api.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings", bookings.List).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id:[0-9]+}", bookings.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id:[0-9]+}/transitions", bookings.Transition).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/inspections", bookings.RecordInspection).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/inspections/{phase}", bookings.GetInspection).Methods(http.MethodGet)

	api.HandleFunc("/bookings/{id:[0-9]+}/assignment", assignments.Assign).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/assignment", assignments.Unassign).Methods(http.MethodDelete)
	api.HandleFunc("/personnel/available", assignments.ListAvailable).Methods(http.MethodGet)

	api.HandleFunc("/trips/{bookingID:[0-9]+}/events", trips.Event).Methods(http.MethodPost)

	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}
