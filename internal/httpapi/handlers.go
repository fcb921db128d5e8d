package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spin-wheel/internal/options"
	"github.com/DoyleJ11/spin-wheel/internal/session"
	"github.com/DoyleJ11/spin-wheel/internal/types"
	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func CurrentOptions(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := getState(r, s)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, options.GenerateResponse{Options: wheel.Labels(v.Options)})
	}
}

func GenerateOptions(s *session.Session, gen *options.Service, logger *zap.Logger) http.HandlerFunc {
	logger = logger.Named("generate")
	return func(w http.ResponseWriter, r *http.Request) {
		var req options.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request format")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		// Refuse before paying for a provider call.
		v, err := getState(r, s)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if v.Frame.Phase == wheel.PhaseSpinning {
			writeError(w, http.StatusConflict, wheel.ErrInvalidState.Error())
			return
		}

		res, err := gen.Generate(r.Context(), req.Prompt)
		if err != nil {
			status := generateStatus(err)
			if status >= http.StatusInternalServerError {
				logger.Error("generate options", zap.String("prompt", req.Prompt), zap.Error(err))
			}
			writeError(w, status, err.Error())
			return
		}

		setErr, err := session.Ask(r.Context(), s, func(reply chan error) session.Msg {
			return session.SetOptions{Options: wheel.OptionsFromLabels(res.Options), Reply: reply}
		})
		if err == nil {
			err = setErr
		}
		if err != nil {
			writeError(w, setOptionsStatus(err), err.Error())
			return
		}

		logger.Info("options generated",
			zap.String("source", string(res.Source)),
			zap.Int("count", len(res.Options)),
		)
		writeJSON(w, http.StatusOK, options.GenerateResponse{Options: res.Options})
	}
}

func generateStatus(err error) int {
	switch {
	case errors.Is(err, options.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, options.ErrNoOptions):
		return http.StatusUnprocessableEntity
	case errors.Is(err, options.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, options.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func setOptionsStatus(err error) int {
	switch {
	case errors.Is(err, wheel.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, wheel.ErrEmptyOptionSet):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusServiceUnavailable
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "max" {
				return fmt.Sprintf("Prompt cannot be longer than %d characters", options.MaxPromptLength)
			}
		}
	}
	return "Prompt cannot be empty"
}

func Spin(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := session.Ask(r.Context(), s, func(reply chan session.SpinReply) session.Msg {
			return session.Spin{Reply: reply}
		})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if res.Err != nil {
			writeError(w, http.StatusConflict, res.Err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.SpinResponse{
			SpinID:     res.SpinID,
			DurationMS: res.Duration.Milliseconds(),
		})
	}
}

func Wheel(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := getState(r, s)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.ViewFrom(v))
	}
}

func getState(r *http.Request, s *session.Session) (session.View, error) {
	return session.Ask(r.Context(), s, func(reply chan session.View) session.Msg {
		return session.GetState{Reply: reply}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, options.GenerateResponse{Error: msg})
}
