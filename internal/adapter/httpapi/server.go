package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/example/shipment-label-service/internal/domain"
	"github.com/example/shipment-label-service/internal/usecase"
)

// UseCases — набор прикладных операций, обслуживаемых API.
type UseCases struct {
	Create usecase.CreateShipment
	Get    usecase.GetShipment
	Update usecase.UpdateShipment
	Delete usecase.DeleteShipment
	List   usecase.ListShipments
	Stats  usecase.GetShipmentStats
	Label  usecase.CreateLabel
}

type Server struct {
	Router *mux.Router
	UC     UseCases
	Log    *logrus.Logger
}

func NewServer(uc UseCases, log *logrus.Logger) *Server {
	s := &Server{Router: mux.NewRouter(), UC: uc, Log: log}
	api := s.Router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/shipments/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/shipments", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/shipments", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/shipments/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/shipments/{id}", s.handleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/shipments/{id}", s.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/shipments/{id}/label", s.handleCreateLabel).Methods(http.MethodPost)
	return s
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.Shipment
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := s.UC.Create.Execute(r.Context(), &in)
	if err != nil {
		s.failErr(w, err)
		return
	}
	s.respond(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sh, err := s.UC.Get.Execute(r.Context(), id)
	if err != nil {
		s.failErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, sh)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in domain.Shipment
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.ID = mux.Vars(r)["id"]
	if err := s.UC.Update.Execute(r.Context(), &in); err != nil {
		s.failErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"id": in.ID})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.UC.Delete.Execute(r.Context(), id); err != nil {
		s.failErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	f := domain.ListFilter{
		Status:             domain.Status(r.URL.Query().Get("status")),
		DestinationCountry: r.URL.Query().Get("country"),
	}
	items, err := s.UC.List.Execute(r.Context(), f)
	if err != nil {
		s.failErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, items)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.UC.Stats.Execute(r.Context())
	if err != nil {
		s.failErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, stats)
}

func (s *Server) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	resp, err := s.UC.Label.Execute(r.Context(), id)
	if err != nil {
		s.failErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, resp)
}

func (s *Server) respond(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// helper для единых ошибок
func (s *Server) fail(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"status": "fail", "message": message})
}

func (s *Server) failErr(w http.ResponseWriter, err error) {
	if s.Log != nil {
		s.Log.WithError(err).Warn("request failed")
	}
	s.fail(w, statusFor(err), err.Error())
}

// statusFor отображает доменную таксономию ошибок в HTTP-статусы.
func statusFor(err error) int {
	var (
		precondErr   *domain.PreconditionError
		configErr    *domain.ConfigurationError
		rejectErr    *domain.CarrierRejectionError
		transportErr *domain.TransportError
		shapeErr     *domain.ResponseShapeError
		partialErr   *domain.PartialSuccessError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.As(err, &precondErr):
		return http.StatusConflict
	case errors.As(err, &configErr):
		return http.StatusInternalServerError
	case errors.As(err, &rejectErr):
		return http.StatusBadGateway
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	case errors.As(err, &shapeErr):
		return http.StatusBadGateway
	case errors.As(err, &partialErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
