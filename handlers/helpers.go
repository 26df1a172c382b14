package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/pooltrack/tournament-api/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // programmer error: dst is not a pointer
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

// okResponse writes the uniform success envelope.
func okResponse(w http.ResponseWriter, status int, data interface{}, message string) {
	env := jsonResponse{"statusCode": status, "data": data, "message": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write JSON response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// softFailResponse answers a business-rule failure (not found, conflict,
// not assigned): HTTP 200 with an embedded status 400, the documented
// external convention of this API.
func softFailResponse(w http.ResponseWriter, msg string) {
	env := jsonResponse{"status": http.StatusBadRequest, "msg": msg, "data": jsonResponse{}, "err": ""}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		slog.Error("failed to write JSON response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func badRequestResponse(w http.ResponseWriter, err error) {
	env := jsonResponse{"statusCode": http.StatusBadRequest, "data": jsonResponse{}, "message": err.Error()}
	if writeErr := writeJSON(w, http.StatusBadRequest, env, nil); writeErr != nil {
		slog.Error("failed to write JSON response", slog.Any("error", writeErr))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// failedValidationResponse reports per-field validation messages.
func failedValidationResponse(w http.ResponseWriter, errs map[string][]string) {
	env := jsonResponse{"statusCode": http.StatusBadRequest, "data": jsonResponse{}, "errors": errs}
	if err := writeJSON(w, http.StatusBadRequest, env, nil); err != nil {
		slog.Error("failed to write JSON response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	slog.Error("internal server error", slog.Any("error", err))
	env := jsonResponse{"statusCode": http.StatusInternalServerError, "data": jsonResponse{}, "message": err.Error()}
	if writeErr := writeJSON(w, http.StatusInternalServerError, env, nil); writeErr != nil {
		slog.Error("failed to write JSON response", slog.Any("error", writeErr))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// mapServiceErrorToHTTP translates service-layer errors into responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrPlayerOrTournamentNotFound),
		errors.Is(err, services.ErrPlayerEmailConflict),
		errors.Is(err, services.ErrTournamentNameConflict),
		errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrNotAssigned):
		softFailResponse(w, err.Error())
	default:
		serverErrorResponse(w, err)
	}
}

// queryInt64 parses an optional numeric query parameter.
func queryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be numeric", key)
	}
	return &v, nil
}

func queryString(r *http.Request, key string) *string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	return &raw
}
