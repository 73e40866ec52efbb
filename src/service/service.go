package service

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/deeptony/flightInsurance/src/flightsurety"
	"github.com/sirupsen/logrus"
)

// Service ...
type Service struct {
	sync.Mutex

	bindAddress string
	engine      *flightsurety.FlightSurety
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, engine *flightsurety.FlightSurety, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		engine:      engine,
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

// registerHandlers registers the API handlers with the DefaultServerMux of
// the http package. It is possible that another server in the same process is
// simultaneously using the DefaultServerMux. In which case, the handlers will
// be accessible from both servers. This is useful when the engine is embedded
// in-memory and expected to use the same endpoint (address:port) as the
// application's API.
func (s *Service) registerHandlers() {
	s.logger.Debug("Registering FlightSurety API handlers")
	http.HandleFunc("/stats", s.makeHandler(s.GetStats))
	http.HandleFunc("/airlines", s.makeHandler(s.GetAirlines))
	http.HandleFunc("/oracles", s.makeHandler(s.GetOracles))
	http.HandleFunc("/requests", s.makeHandler(s.GetRequests))
	http.HandleFunc("/requests/", s.makeHandler(s.GetRequest))
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Serve calls ListenAndServe. This is a blocking call. It is not necessary to
// call Serve when the engine is used in-memory and another server has already
// been started with the DefaultServerMux and the same address:port
// combination.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving FlightSurety API")

	err := http.ListenAndServe(s.bindAddress, nil)
	if err != nil {
		s.logger.WithError(err).Error("Service failed")
	}
}

// Stats is the response of the /stats endpoint.
type Stats struct {
	Airlines     int `json:"airlines"`
	Admitted     int `json:"admitted"`
	Authorized   int `json:"authorized"`
	Oracles      int `json:"oracles"`
	OpenRequests int `json:"open_requests"`
}

// GetStats returns aggregate counters about the engine's state.
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	all := s.engine.Airlines()

	stats := Stats{
		Airlines:     len(all),
		Oracles:      len(s.engine.OracleList()),
		OpenRequests: len(s.engine.OpenRequests()),
	}

	for _, airline := range all {
		if airline.Admitted {
			stats.Admitted++
		}
		if airline.Authorized {
			stats.Authorized++
		}
	}

	s.writeJSON(w, stats)
}

// GetAirlines returns all known airlines.
func (s *Service) GetAirlines(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.engine.Airlines())
}

// GetOracles returns all registered oracles.
func (s *Service) GetOracles(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.engine.OracleList())
}

// GetRequests returns the requests still awaiting quorum.
func (s *Service) GetRequests(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.engine.OpenRequests())
}

// GetRequest returns a single request by composite key:
// /requests/{key}
func (s *Service) GetRequest(w http.ResponseWriter, r *http.Request) {
	param := strings.TrimPrefix(r.URL.Path, "/requests/")

	request, err := s.engine.Store.GetRequest(param)
	if err != nil {
		s.logger.WithError(err).Errorf("Retrieving request %s", param)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	s.writeJSON(w, request)
}

func (s *Service) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
		http.Error(w, "JSON marshalling error", http.StatusInternalServerError)
	}
}
