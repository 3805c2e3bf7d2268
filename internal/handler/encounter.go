package handler

import (
	"net/http"

	"github.com/osse101/GridClash_Go/internal/domain"
	"github.com/osse101/GridClash_Go/internal/encounter"
	"github.com/osse101/GridClash_Go/internal/logger"
)

// EncounterHandler serves the encounter lifecycle and action endpoints
type EncounterHandler struct {
	service encounter.Service
}

// NewEncounterHandler creates a new encounter handler
func NewEncounterHandler(service encounter.Service) *EncounterHandler {
	return &EncounterHandler{service: service}
}

// ActionRequest identifies the acting creature for an action endpoint
type ActionRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid"`
}

// AttackRequest asks the current creature to attack a target
type AttackRequest struct {
	AttackerID string `json:"attacker_id" validate:"required,uuid"`
	TargetID   string `json:"target_id" validate:"required,uuid"`
}

// PositionRequest carries an action aimed at a grid cell
type PositionRequest struct {
	ActorID string          `json:"actor_id" validate:"required,uuid"`
	Pos     domain.Position `json:"pos"`
}

// InteractRequest asks a creature to interact with a world object
type InteractRequest struct {
	ActorID  string `json:"actor_id" validate:"required,uuid"`
	ObjectID string `json:"object_id" validate:"required,uuid"`
}

// HandleCreate creates a new encounter
func (h *EncounterHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req encounter.CreateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create encounter"); err != nil {
		return
	}

	state, err := h.service.Create(r.Context(), req)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgCreateEncounterFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Data: state})
}

// HandleGet returns the encounter snapshot
func (h *EncounterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	state, err := h.service.Get(r.Context(), id)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgGetEncounterFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: state})
}

// HandleAttack resolves an attack by the current creature
func (h *EncounterHandler) HandleAttack(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	var req AttackRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Attack"); err != nil {
		return
	}

	attackerID, targetID, ok := parseUUIDPair(w, r, req.AttackerID, req.TargetID)
	if !ok {
		return
	}

	outcome, err := h.service.Attack(r.Context(), id, attackerID, targetID)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgAttackFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: outcome})
}

// HandlePickup picks up the lootable object at a cell
func (h *EncounterHandler) HandlePickup(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	var req PositionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Pickup"); err != nil {
		return
	}

	actorID, ok := parseBodyUUID(w, r, req.ActorID, "actor_id")
	if !ok {
		return
	}

	outcome, err := h.service.Pickup(r.Context(), id, actorID, req.Pos)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgPickupFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: outcome})
}

// HandleMove steps the current creature to an adjacent cell
func (h *EncounterHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	var req PositionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Move"); err != nil {
		return
	}

	actorID, ok := parseBodyUUID(w, r, req.ActorID, "actor_id")
	if !ok {
		return
	}

	state, err := h.service.Move(r.Context(), id, actorID, req.Pos)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgMoveFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: state})
}

// HandleInteract runs an object interaction
func (h *EncounterHandler) HandleInteract(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	var req InteractRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Interact"); err != nil {
		return
	}

	actorID, objectID, ok := parseUUIDPair(w, r, req.ActorID, req.ObjectID)
	if !ok {
		return
	}

	if err := h.service.Interact(r.Context(), id, actorID, objectID); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgInteractFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "interaction complete"})
}

// HandleNextTurn advances the rotation one slot
func (h *EncounterHandler) HandleNextTurn(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	outcome, err := h.service.AdvanceTurn(r.Context(), id)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgAdvanceTurnFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: outcome})
}

// HandleTurnOrder returns the rotation from the current creature
func (h *EncounterHandler) HandleTurnOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	order, err := h.service.TurnOrder(r.Context(), id)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgTurnOrderFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: order})
}

// HandleSortInitiative reorders the rotation by initiative
func (h *EncounterHandler) HandleSortInitiative(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	order, err := h.service.SortByInitiative(r.Context(), id)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgTurnOrderFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: order})
}

// HandleAbandon evicts an encounter
func (h *EncounterHandler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	id, ok := URLParamUUID(r, w, "encounterID")
	if !ok {
		return
	}

	if err := h.service.Abandon(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "encounter abandoned"})
}
