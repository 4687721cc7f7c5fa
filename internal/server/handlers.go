package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/rpgo/dca-calculator/internal/calculation"
	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/rpgo/dca-calculator/internal/output"
	"github.com/rpgo/dca-calculator/internal/prices"
	"github.com/rpgo/dca-calculator/pkg/dateutil"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status       string `json:"status"`
	PricesLoaded bool   `json:"prices_loaded"`
}

type latestPriceResponse struct {
	Date         string          `json:"date"`
	Close        decimal.Decimal `json:"close"`
	Observations int             `json:"observations"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		PricesLoaded: s.prices != nil && s.prices.IsLoaded,
	})
}

func (s *Server) handleLatestPrice(w http.ResponseWriter, r *http.Request) {
	observations, err := s.observations()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	last := observations[len(observations)-1]
	s.writeJSON(w, http.StatusOK, latestPriceResponse{
		Date:         dateutil.FormatDayMonthYear(last.Date),
		Close:        last.Close,
		Observations: len(observations),
	})
}

func (s *Server) handlePriceStats(w http.ResponseWriter, r *http.Request) {
	if _, err := s.observations(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.prices.Series.Statistics)
}

// handleSimulate answers GET /api/simulate.
// An unreal or missing start date yields 204 with no body.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params, err := parseSimulationParameters(query)
	if err != nil {
		if errors.Is(err, calculation.ErrInvalidDate) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	formatter := output.Formatter(output.JSONFormatter{})
	if name := query.Get("format"); name != "" {
		if formatter = output.GetFormatterByName(name); formatter == nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, name))
			return
		}
	}

	observations, err := s.observations()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	result, err := s.engine.Calculate(params, observations)
	switch {
	case errors.Is(err, calculation.ErrInvalidDate):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, calculation.ErrNonPositiveContribution), errors.Is(err, calculation.ErrNegativeRetirementAge):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.log.Error().Err(err).Msg("simulation failed")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if _, ok := formatter.(output.JSONFormatter); ok {
		s.writeJSON(w, http.StatusOK, result)
		return
	}
	body, err := formatter.Format(result)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType(formatter.Name()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) observations() ([]domain.PriceObservation, error) {
	if s.prices == nil {
		return nil, prices.ErrNotLoaded
	}
	return s.prices.Observations()
}

// parseSimulationParameters reads birth_date=dd/mm/yyyy or day/month/year,
// plus optional retirement_age and monthly.
func parseSimulationParameters(query url.Values) (domain.SimulationParameters, error) {
	params := domain.SimulationParameters{MonthlyContribution: domain.DefaultMonthlyContribution}

	if raw := strings.TrimSpace(query.Get("birth_date")); raw != "" {
		start, err := calculation.ParseStartDate(raw)
		if err != nil {
			return params, err
		}
		params.StartDate = start
	} else {
		var fields [3]int
		for i, key := range []string{"day", "month", "year"} {
			v, err := optionalInt(query, key)
			if err != nil {
				return params, err
			}
			fields[i] = v
		}
		start, err := calculation.StartDateFromFields(fields[0], fields[1], fields[2])
		if err != nil {
			return params, err
		}
		params.StartDate = start
	}

	if query.Has("retirement_age") {
		age, err := optionalInt(query, "retirement_age")
		if err != nil {
			return params, err
		}
		params.RetirementAge = &age
	}

	if raw := strings.TrimSpace(query.Get("monthly")); raw != "" {
		monthly, err := decimal.NewFromString(raw)
		if err != nil {
			return params, fmt.Errorf("%w: monthly: %v", errBadRequest, err)
		}
		params.MonthlyContribution = monthly
	}
	return params, nil
}

func optionalInt(query url.Values, key string) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errBadRequest, key, raw)
	}
	return v, nil
}

func contentType(format string) string {
	switch format {
	case "html":
		return "text/html; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	case "pdf":
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
