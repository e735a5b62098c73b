// Package server is the JSON gateway in front of the duel engine. The chat
// transport submits actions and challenges here and receives outbound
// notifications through the configured webhook.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"grandline-arena/internal/domain"
	"grandline-arena/internal/service"
)

type ArenaServer struct {
	characters *service.CharacterService
	duels      *service.DuelService
	logger     zerolog.Logger
}

func NewArenaServer(characters *service.CharacterService, duels *service.DuelService, logger zerolog.Logger) *ArenaServer {
	return &ArenaServer{characters: characters, duels: duels, logger: logger}
}

// Routes registers all handlers on the mux.
func (s *ArenaServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/characters", s.handleCreateCharacter)
	mux.HandleFunc("GET /v1/characters/{id}", s.handleGetCharacter)
	mux.HandleFunc("POST /v1/challenges", s.handleChallenge)
	mux.HandleFunc("POST /v1/actions", s.handleAction)
	mux.HandleFunc("GET /v1/matches/{participant}", s.handleMatchStatus)
	mux.HandleFunc("DELETE /v1/matches/{id}", s.handleAbortMatch)
}

type createCharacterRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Race           string `json:"race"`
	Alignment      string `json:"alignment"`
	BonusAttribute string `json:"bonus_attribute,omitempty"`
}

type characterResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Race            string `json:"race"`
	Alignment       string `json:"alignment"`
	Level           int    `json:"level"`
	XP              int    `json:"xp"`
	AttributePoints int    `json:"attribute_points"`
	Berrys          int    `json:"berrys"`
	Energy          int    `json:"energy"`
	MaxEnergy       int    `json:"max_energy"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
}

func (s *ArenaServer) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" || req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "id and name are required")
		return
	}

	character, err := s.characters.Create(r.Context(), req.ID, req.Name, req.Race, req.Alignment, req.BonusAttribute)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusCreated, toCharacterResponse(character))
}

func (s *ArenaServer) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	character, err := s.characters.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toCharacterResponse(character))
}

type challengeRequest struct {
	ChallengerID string `json:"challenger_id"`
	OpponentID   string `json:"opponent_id"`
}

type challengeResponse struct {
	MatchID     string `json:"match_id"`
	CurrentTurn string `json:"current_turn"`
	Round       int    `json:"round"`
}

func (s *ArenaServer) handleChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ChallengerID == "" || req.OpponentID == "" || req.ChallengerID == req.OpponentID {
		s.writeError(w, http.StatusBadRequest, "two distinct participant ids are required")
		return
	}

	match, err := s.duels.Challenge(r.Context(), req.ChallengerID, req.OpponentID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, challengeResponse{
		MatchID:     match.ID,
		CurrentTurn: match.CurrentTurn,
		Round:       match.Round,
	})
}

type actionRequest struct {
	ParticipantID string `json:"participant_id"`
	Text          string `json:"text"`
}

type actionResponse struct {
	Accepted  bool   `json:"accepted"`
	Rejection string `json:"rejection,omitempty"`
	Narrative string `json:"narrative,omitempty"`
	Finished  bool   `json:"finished"`
	Winner    string `json:"winner,omitempty"`
}

func (s *ArenaServer) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ParticipantID == "" {
		s.writeError(w, http.StatusBadRequest, "participant_id is required")
		return
	}

	outcome, err := s.duels.SubmitAction(r.Context(), req.ParticipantID, req.Text)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	// Rejections are duel outcomes, not transport failures.
	s.writeJSON(w, http.StatusOK, actionResponse{
		Accepted:  !outcome.Rejected(),
		Rejection: string(outcome.Rejection),
		Narrative: outcome.Narrative,
		Finished:  outcome.Finished,
		Winner:    outcome.Winner,
	})
}

func (s *ArenaServer) handleMatchStatus(w http.ResponseWriter, r *http.Request) {
	frame, err := s.duels.Status(r.Context(), r.PathValue("participant"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": frame})
}

func (s *ArenaServer) handleAbortMatch(w http.ResponseWriter, r *http.Request) {
	if err := s.duels.Abort(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCharacterResponse(c *domain.Character) characterResponse {
	return characterResponse{
		ID:              c.ID,
		Name:            c.Name,
		Race:            c.Race,
		Alignment:       c.Alignment,
		Level:           c.Level,
		XP:              c.XP,
		AttributePoints: c.AttributePoints,
		Berrys:          c.Berrys,
		Energy:          c.Energy,
		MaxEnergy:       c.MaxEnergy,
		Wins:            c.Wins,
		Losses:          c.Losses,
	}
}

func (s *ArenaServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCharacterNotFound), errors.Is(err, domain.ErrNoActiveMatch):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyMatched), errors.Is(err, domain.ErrNotYourTurn), errors.Is(err, domain.ErrMatchFinished):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Msg("internal error")
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *ArenaServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode response")
	}
}

func (s *ArenaServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
