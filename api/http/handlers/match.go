package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/brunovmr/trilha/api/http/presenter"
	"github.com/brunovmr/trilha/pkg/job"
	"github.com/brunovmr/trilha/pkg/match"
)

type MatchHandler struct {
	uc match.UseCase
}

func NewMatchHandler(uc match.UseCase) *MatchHandler { return &MatchHandler{uc: uc} }

type computeResponse struct {
	Result match.Result `json:"result"`
	Saved  bool         `json:"saved"`
	// Warning is set when the result was computed but could not be stored.
	Warning string `json:"warning,omitempty"`
}

// Compute runs (or reruns) the compatibility analysis for an owner and a job.
// A transient model failure never reaches the client as an error: the
// deterministic path guarantees a scored response.
func (h *MatchHandler) Compute(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("ownerId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "ownerId inválido")
	}
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "jobId inválido")
	}

	result, err := h.uc.Compute(c.Context(), ownerID, jobID)
	switch {
	case err == nil:
		return presenter.JSON(c, http.StatusCreated, computeResponse{Result: result, Saved: true})
	case errors.Is(err, match.ErrInFlight):
		return presenter.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, job.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "vaga não encontrada")
	case errors.Is(err, match.ErrNotPersisted):
		// computed but not saved: hand the result over anyway
		return presenter.JSON(c, http.StatusOK, computeResponse{
			Result:  result,
			Saved:   false,
			Warning: "análise calculada, mas não foi possível salvá-la; tente novamente",
		})
	default:
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
}

// Get returns the cached result for the pair, 404 when never computed.
func (h *MatchHandler) Get(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("ownerId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "ownerId inválido")
	}
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "jobId inválido")
	}

	result, err := h.uc.Get(c.Context(), ownerID, jobID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "análise ainda não calculada")
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, result)
}
