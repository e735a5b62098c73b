package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"grandline-arena/internal/combat"
	"grandline-arena/internal/constants"
	"grandline-arena/internal/domain"
	"grandline-arena/internal/interpreter"
	"grandline-arena/internal/notify"
	"grandline-arena/internal/registry"
	"grandline-arena/internal/scheduler"
)

// DuelService orchestrates a duel: registry lookup, interpretation,
// resolution, turn deadlines and outbound notifications. It owns the turn
// scheduler and is its callback target.
type DuelService struct {
	reg         *registry.Registry
	sched       *scheduler.Scheduler
	store       CharacterStore
	progression *ProgressionService
	notifier    notify.Notifier
	logger      zerolog.Logger
}

func NewDuelService(
	reg *registry.Registry,
	windows scheduler.Windows,
	store CharacterStore,
	progression *ProgressionService,
	notifier notify.Notifier,
	logger zerolog.Logger,
) *DuelService {
	s := &DuelService{
		reg:         reg,
		store:       store,
		progression: progression,
		notifier:    notifier,
		logger:      logger,
	}
	s.sched = scheduler.New(windows, s, logger)
	return s
}

// Scheduler exposes the owned scheduler for lifecycle shutdown.
func (s *DuelService) Scheduler() *scheduler.Scheduler { return s.sched }

// ActionOutcome is what a submitted action produced, for the submitter.
type ActionOutcome struct {
	Rejection combat.Rejection
	Narrative string
	Finished  bool
	Winner    string
}

func (o *ActionOutcome) Rejected() bool { return o.Rejection != combat.RejectionNone }

// Challenge starts a duel between two registered characters. Both must
// exist and neither may already be in a match.
func (s *DuelService) Challenge(ctx context.Context, challengerID, opponentID string) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	challenger, err := s.store.Get(ctx, challengerID)
	if err != nil {
		return nil, err
	}
	opponent, err := s.store.Get(ctx, opponentID)
	if err != nil {
		return nil, err
	}

	match, err := s.reg.Create(
		domain.Combatant{ID: challenger.ID, Name: challenger.Name},
		domain.Combatant{ID: opponent.ID, Name: opponent.Name},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("match_id", match.ID).
		Str("challenger", challengerID).
		Str("opponent", opponentID).
		Msg("duel started")

	// The match is discoverable through the registry from here on, so the
	// opening snapshot and the first arming happen under its lock.
	match.Lock()
	firstMover := match.CombatantA
	s.sched.Arm(match.ID, match.CurrentTurn, match.Version)
	match.Unlock()

	s.broadcast(match.CombatantA.ID, match.CombatantB.ID, fmt.Sprintf(
		"⚔️ DUEL ! %s affronte %s dans l'arène !", challenger.Name, opponent.Name))
	s.notifier.Notify(context.Background(), challengerID, turnPrompt(firstMover))

	return match, nil
}

// SubmitAction runs one turn for the submitting participant. Turn ownership
// is checked before any interpretation happens.
func (s *DuelService) SubmitAction(ctx context.Context, participantID, text string) (*ActionOutcome, error) {
	match, ok := s.reg.FindByParticipant(participantID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoActiveMatch, participantID)
	}

	match.Lock()

	if match.Status != domain.MatchActive {
		match.Unlock()
		return nil, domain.ErrMatchFinished
	}
	if match.CurrentTurn != participantID {
		match.Unlock()
		return nil, domain.ErrNotYourTurn
	}

	desc := interpreter.Interpret(text)
	attacker := match.Current()
	defender := match.Opponent()
	result := combat.Resolve(desc, attacker.Name, defender.Name, attacker.Energy)

	if result.Rejected() {
		match.Unlock()
		// No state was touched; the turn deadline keeps running. The refusal
		// notice goes out regardless of the inbound request's context.
		s.notifier.Notify(context.Background(), participantID, rejectionMessage(result.Rejection))
		s.logger.Info().
			Str("match_id", match.ID).
			Str("participant_id", participantID).
			Str("rejection", string(result.Rejection)).
			Int("specificity", desc.Specificity).
			Msg("action rejected")
		return &ActionOutcome{Rejection: result.Rejection}, nil
	}

	// The resolution won the race for this turn: drop the pending deadline
	// before any mutation becomes visible.
	s.sched.Cancel(match.ID)

	attacker.SpendEnergy(result.EnergyCost)
	defeated := defender.ApplyDamage(result.Damage)
	match.AppendLog(result.Narrative)

	s.logger.Info().
		Str("match_id", match.ID).
		Str("participant_id", participantID).
		Str("kind", string(desc.Kind)).
		Int("specificity", desc.Specificity).
		Int("damage", result.Damage).
		Int("energy_cost", result.EnergyCost).
		Int("defender_health", defender.Health).
		Msg("action resolved")

	if defeated {
		winnerID, loserID := attacker.ID, defender.ID
		summary := s.finishLocked(match, winnerID)
		match.Unlock()

		s.settleMatch(match.ID, winnerID, loserID, summary)
		return &ActionOutcome{Narrative: result.Narrative, Finished: true, Winner: winnerID}, nil
	}

	match.AdvanceTurn()
	next := *match.Current()
	frame := statusFrame(match)
	// Arm before releasing the lock so nothing can slip in between the turn
	// advance and its deadline.
	s.sched.Arm(match.ID, next.ID, match.Version)
	match.Unlock()

	s.broadcast(match.CombatantA.ID, match.CombatantB.ID, result.Narrative+"\n\n"+frame)
	s.notifier.Notify(context.Background(), next.ID, turnPrompt(next))

	return &ActionOutcome{Narrative: result.Narrative}, nil
}

// OnWarning notifies the still-waiting participant. Match state is never
// mutated here.
func (s *DuelService) OnWarning(matchID, participantID string, version uint64, remaining time.Duration) {
	match, ok := s.reg.Get(matchID)
	if !ok {
		return
	}

	match.Lock()
	stale := match.Status != domain.MatchActive || match.Version != version || match.CurrentTurn != participantID
	match.Unlock()
	if stale {
		return
	}

	s.notifier.Notify(context.Background(), participantID, fmt.Sprintf(
		"⏰ Plus que %s pour jouer ton action !", formatRemaining(remaining)))
}

// OnTimeout synthesizes a forced timeout resolution: energy penalty, no
// damage, turn flips, round increments, fresh deadline for the opponent.
// A timeout armed for an already-advanced turn is a no-op.
func (s *DuelService) OnTimeout(matchID, participantID string, version uint64) {
	match, ok := s.reg.Get(matchID)
	if !ok {
		return
	}

	match.Lock()
	if match.Status != domain.MatchActive || match.Version != version || match.CurrentTurn != participantID {
		match.Unlock()
		return
	}

	waiting := match.Current()
	waiting.SpendEnergy(constants.TimeoutEnergyPenalty)
	line := fmt.Sprintf("⏳ %s n'a pas répondu à temps ! (-%d%% énergie)", waiting.Name, constants.TimeoutEnergyPenalty)
	match.AppendLog(line)

	match.AdvanceTurn()
	next := *match.Current()
	frame := statusFrame(match)
	s.sched.Arm(matchID, next.ID, match.Version)
	match.Unlock()

	s.logger.Info().
		Str("match_id", matchID).
		Str("participant_id", participantID).
		Msg("turn timed out")

	s.broadcast(match.CombatantA.ID, match.CombatantB.ID, line+"\n\n"+frame)
	s.notifier.Notify(context.Background(), next.ID, turnPrompt(next))
}

// Abort administratively cancels a match: timers first, then registry
// removal, so no timer can fire against a removed match.
func (s *DuelService) Abort(ctx context.Context, matchID string) error {
	match, ok := s.reg.Get(matchID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNoActiveMatch, matchID)
	}

	s.sched.Cancel(matchID)

	match.Lock()
	match.Finish("")
	a, b := match.CombatantA.ID, match.CombatantB.ID
	match.Unlock()

	s.reg.Remove(matchID)
	s.broadcast(a, b, "🛑 Le duel a été interrompu par un administrateur.")

	s.logger.Info().Str("match_id", matchID).Msg("match aborted")
	return nil
}

// Status renders the participant's current match as a status frame.
func (s *DuelService) Status(ctx context.Context, participantID string) (string, error) {
	match, ok := s.reg.FindByParticipant(participantID)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrNoActiveMatch, participantID)
	}

	match.Lock()
	frame := statusFrame(match)
	match.Unlock()
	return frame, nil
}

// finishLocked flips the match to finished and builds the victory summary.
// Callers hold the match lock.
func (s *DuelService) finishLocked(match *domain.Match, winnerID string) string {
	if !match.Finish(winnerID) {
		return ""
	}

	winner := match.ByID(winnerID)
	loser := &match.CombatantA
	if loser.ID == winnerID {
		loser = &match.CombatantB
	}

	return fmt.Sprintf(
		"🏆 VICTOIRE DE %s !\n\n%s est K.O. !\n\n%s\n\n✨ +%d XP et +%d Berrys pour %s, +%d XP pour %s.",
		winner.Name, loser.Name, statusFrame(match),
		constants.WinnerXP, constants.WinnerBerrys, winner.Name,
		constants.LoserXP, loser.Name,
	)
}

// settleMatch runs the exactly-once end-of-match path: cancel timers,
// credit rewards, notify, then drop the registry entries. Persistence
// failures are logged; health reaching zero already decided the match.
func (s *DuelService) settleMatch(matchID, winnerID, loserID, summary string) {
	s.sched.Cancel(matchID)

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	if _, err := s.progression.CreditExperience(ctx, winnerID, constants.WinnerXP); err != nil {
		s.logger.Error().Err(err).Str("participant_id", winnerID).Msg("failed to credit winner experience")
	}
	if err := s.progression.CreditCurrency(ctx, winnerID, constants.WinnerBerrys); err != nil {
		s.logger.Error().Err(err).Str("participant_id", winnerID).Msg("failed to credit winner berrys")
	}
	if err := s.progression.RecordResult(ctx, winnerID, true); err != nil {
		s.logger.Error().Err(err).Str("participant_id", winnerID).Msg("failed to record win")
	}
	if _, err := s.progression.CreditExperience(ctx, loserID, constants.LoserXP); err != nil {
		s.logger.Error().Err(err).Str("participant_id", loserID).Msg("failed to credit loser experience")
	}
	if err := s.progression.RecordResult(ctx, loserID, false); err != nil {
		s.logger.Error().Err(err).Str("participant_id", loserID).Msg("failed to record loss")
	}

	s.broadcast(winnerID, loserID, summary)
	s.reg.Remove(matchID)

	s.logger.Info().
		Str("winner", winnerID).
		Str("loser", loserID).
		Msg("match settled")
}

// broadcast fans a message out to both participants. Fire and forget.
func (s *DuelService) broadcast(a, b, text string) {
	g := new(errgroup.Group)
	for _, id := range []string{a, b} {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyTimeout)
			defer cancel()
			s.notifier.Notify(ctx, id, text)
			return nil
		})
	}
	_ = g.Wait()
}

func rejectionMessage(rejection combat.Rejection) string {
	switch rejection {
	case combat.RejectionInvalidAction:
		return "⚠️ ACTION REFUSÉE\n\nPrécision insuffisante ! Tu dois préciser au moins le membre utilisé (et idéalement la distance, la direction et la cible)."
	case combat.RejectionInsufficientEnergy:
		return "⚠️ ÉNERGIE INSUFFISANTE !\n\nTu n'as pas assez d'énergie pour cette action."
	default:
		return "⚠️ Action impossible."
	}
}

func formatRemaining(d time.Duration) string {
	if d >= time.Minute {
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	return fmt.Sprintf("%d secondes", int(d.Seconds()))
}
